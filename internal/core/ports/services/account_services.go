package services

import (
	"context"

	"github.com/machiport/points_backend/internal/core/domain"
	"github.com/machiport/points_backend/internal/dto"
)

// AccountSvcFacade exposes account reads and the registration-time insert.
type AccountSvcFacade interface {
	// CreateAccount persists a new account for the given identity with a
	// freshly generated referral code.
	CreateAccount(ctx context.Context, accountID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListLedgerEntries retrieves a page of the account's point history,
	// newest first.
	ListLedgerEntries(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error)
}
