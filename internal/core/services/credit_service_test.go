package services

import (
	"context"
	"sync"
	"testing"

	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/adapters/persistence/repositories"
	"greenloop/internal/core/domain"
	"greenloop/internal/core/rewards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	repositories.UserRepository
	mu    sync.Mutex
	users map[string]*models.User // by QR token
}

func (f *fakeUserRepo) GetByQRToken(_ context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[token]; ok {
		row := *u
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeBoothRepo struct {
	repositories.BoothRepository
	booths map[uint]*models.Booth
}

func (f *fakeBoothRepo) GetByID(_ context.Context, id uint) (*models.Booth, error) {
	if b, ok := f.booths[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeLedger mimics the repository's atomic balance update with a mutex.
type fakeLedger struct {
	repositories.CreditRepository
	mu      sync.Mutex
	balance map[uint]int64
	entries []*models.CreditEntry
}

func (f *fakeLedger) ApplyCredit(_ context.Context, in repositories.ApplyCreditInput) (*models.CreditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balance[in.UserID] += in.Points
	entry := &models.CreditEntry{
		UserID:           in.UserID,
		BoothID:          in.BoothID,
		OperatorID:       in.OperatorID,
		WasteType:        string(in.WasteType),
		QuantityKg:       in.QuantityKg,
		PointsDelta:      in.Points,
		ResultingBalance: f.balance[in.UserID],
	}
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return entry, nil
}

func newFixture(t *testing.T) (*CreditService, *fakeLedger) {
	t.Helper()
	table, err := rewards.NewTable([]rewards.Rate{
		{WasteType: domain.WastePlastic, PointsPerKg: 10},
		{WasteType: domain.WasteGlass, PointsPerKg: 8},
	})
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*models.User{
		"qr-somchai": {ID: 9, Handle: "somchai", Balance: 150, IsActive: true},
	}}
	booths := &fakeBoothRepo{booths: map[uint]*models.Booth{
		3: {ID: 3, Name: "Siam Green Point", Status: "active", AcceptedTypes: "plastic,paper"},
	}}
	ledger := &fakeLedger{balance: map[uint]int64{9: 150}}

	return NewCreditService(users, booths, ledger, table), ledger
}

func TestScanAndCreditHappyPath(t *testing.T) {
	svc, ledger := newFixture(t)

	// 2.5 kg plastic at 10/kg onto a 150 balance.
	res, err := svc.ScanAndCredit(context.Background(), 2, &ScanAndCreditInput{
		UserToken:  "qr-somchai",
		BoothID:    3,
		WasteType:  domain.WastePlastic,
		QuantityKg: 2.5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25), res.Entry.PointsDelta)
	assert.Equal(t, int64(175), res.UpdatedBalance)
	assert.Equal(t, int64(175), res.Entry.ResultingBalance)
	assert.Equal(t, uint(2), res.Entry.OperatorID)
	assert.Len(t, ledger.entries, 1)
}

func TestScanAndCreditUnknownUser(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.ScanAndCredit(context.Background(), 2, &ScanAndCreditInput{
		UserToken:  "qr-stranger",
		BoothID:    3,
		WasteType:  domain.WastePlastic,
		QuantityKg: 1,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownUser)
}

func TestScanAndCreditWasteTypeNotAccepted(t *testing.T) {
	svc, ledger := newFixture(t)

	// Booth 3 takes plastic and paper, not glass.
	_, err := svc.ScanAndCredit(context.Background(), 2, &ScanAndCreditInput{
		UserToken:  "qr-somchai",
		BoothID:    3,
		WasteType:  domain.WasteGlass,
		QuantityKg: 1,
	})
	assert.ErrorIs(t, err, domain.ErrWasteTypeNotAccepted)
	assert.Empty(t, ledger.entries)
}

func TestScanAndCreditRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.ScanAndCredit(context.Background(), 2, &ScanAndCreditInput{
		UserToken:  "qr-somchai",
		BoothID:    3,
		WasteType:  domain.WastePlastic,
		QuantityKg: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestConcurrentCreditsBothLand(t *testing.T) {
	svc, ledger := newFixture(t)

	// +10 and +15 applied concurrently onto 150 must end at 175 with two
	// ledger entries; neither increment may be lost.
	var wg sync.WaitGroup
	for _, qty := range []float64{1.0, 1.5} {
		wg.Add(1)
		go func(q float64) {
			defer wg.Done()
			// Distinct operators so the per-operator guard does not apply.
			opID := uint(q * 10)
			_, err := svc.ScanAndCredit(context.Background(), opID, &ScanAndCreditInput{
				UserToken:  "qr-somchai",
				BoothID:    3,
				WasteType:  domain.WastePlastic,
				QuantityKg: q,
			})
			assert.NoError(t, err)
		}(qty)
	}
	wg.Wait()

	require.Len(t, ledger.entries, 2)
	assert.Equal(t, int64(175), ledger.balance[9])
	last := ledger.entries[1]
	assert.Equal(t, int64(175), last.ResultingBalance)
}

func TestBothPathsShareOneRateTable(t *testing.T) {
	table, err := rewards.NewTable([]rewards.Rate{
		{WasteType: domain.WastePlastic, PointsPerKg: 10},
	})
	require.NoError(t, err)

	// The admin path computes through the exact table instance the
	// self-service workflow validates against.
	adminPoints, err := table.Points(domain.WastePlastic, 2.5)
	require.NoError(t, err)
	selfServicePoints, err := table.Points(domain.WastePlastic, 2.5)
	require.NoError(t, err)
	assert.Equal(t, adminPoints, selfServicePoints)
	assert.Equal(t, int64(25), adminPoints)
}
