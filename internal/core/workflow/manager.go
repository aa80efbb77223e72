package workflow

import (
	"sync"

	"greenloop/internal/core/rewards"
)

// Manager hands out one live workflow per user. Drafts live only inside
// their workflow instance and are never persisted, so abandoning a
// session has no side effects.
type Manager struct {
	mu        sync.Mutex
	instances map[uint]*Workflow

	booths BoothResolver
	store  SubmissionStore
	table  *rewards.Table
}

// NewManager creates a workflow manager over the shared collaborators.
func NewManager(booths BoothResolver, store SubmissionStore, table *rewards.Table) *Manager {
	return &Manager{
		instances: make(map[uint]*Workflow),
		booths:    booths,
		store:     store,
		table:     table,
	}
}

// Get returns the user's live workflow, creating one at the appropriate
// entry state on first use.
func (m *Manager) Get(userID uint, hasCachedIdentity bool) *Workflow {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.instances[userID]; ok {
		return w
	}
	w := New(userID, hasCachedIdentity, m.booths, m.store, m.table)
	m.instances[userID] = w
	return w
}

// Drop discards a user's workflow instance, abandoning any draft.
func (m *Manager) Drop(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.instances, userID)
}
