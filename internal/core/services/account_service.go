package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/machiport/points_backend/internal/apperrors"
	"github.com/machiport/points_backend/internal/core/domain"
	portsrepo "github.com/machiport/points_backend/internal/core/ports/repositories"
	portssvc "github.com/machiport/points_backend/internal/core/ports/services"
	"github.com/machiport/points_backend/internal/dto"
	"github.com/machiport/points_backend/internal/middleware"
	"github.com/machiport/points_backend/internal/utils"
)

// referralCodeAttempts bounds the retry loop when a freshly generated code
// collides with an existing one.
const referralCodeAttempts = 3

// AccountService exposes account reads and the registration-time insert.
// Points and bonus markers are never mutated here; those belong to the
// bonus and transfer engines alone.
type AccountService struct {
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Ensure AccountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount persists a new account for the given identity. The
// referral code is generated here; on the unlikely collision the insert is
// retried with a fresh code.
func (s *AccountService) CreateAccount(ctx context.Context, accountID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	var lastErr error
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code, err := utils.GenerateReferralCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate referral code: %w", err)
		}

		account := domain.Account{
			AccountID:    accountID,
			DisplayName:  req.DisplayName,
			AvatarURL:    req.AvatarURL,
			Points:       0,
			Birthday:     req.Birthday,
			ReferralCode: code,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			logger.Info("Account created successfully", slog.String("account_id", accountID))
			return &account, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, err
		}
		lastErr = err
	}

	// Either the account itself already exists or we drew colliding codes
	// three times in a row; surface the duplicate either way.
	logger.Warn("Account insert kept hitting duplicates", slog.String("account_id", accountID))
	return nil, lastErr
}

// GetAccountByID retrieves an account by its ID.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListLedgerEntries retrieves a page of the account's point history,
// newest first.
func (s *AccountService) ListLedgerEntries(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.ledgerRepo.ListEntriesByAccountID(ctx, accountID, limit, offset)
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}
