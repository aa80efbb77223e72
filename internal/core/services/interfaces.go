package services

import (
	"context"

	"greenloop/internal/core/domain"
)

// The submission and credit workflows talk to their collaborators through
// these interfaces; the services below satisfy them in production and
// fakes satisfy them in tests. The atomic credit contract lives on
// repositories.CreditRepository, next to the transaction that honors it.

// BoothDirectory lists and resolves collection booths.
type BoothDirectory interface {
	ListBooths(ctx context.Context) ([]domain.Booth, error)
	ResolveBoothByToken(ctx context.Context, token string) (*domain.Booth, error)
}

// IdentityResolver resolves a scanned user QR token (operator path).
type IdentityResolver interface {
	ResolveUserByToken(ctx context.Context, token string) (*domain.User, error)
}

// SubmissionStore persists self-service submission records.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, rec *domain.SubmissionRecord) (*domain.SubmissionRecord, error)
}

var (
	_ BoothDirectory   = (*BoothService)(nil)
	_ IdentityResolver = (*CreditService)(nil)
	_ SubmissionStore  = (*SubmissionService)(nil)
)
