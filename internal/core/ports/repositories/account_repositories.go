package repositories

import (
	"context"

	"github.com/machiport/points_backend/internal/core/domain"
)

// AccountRepository defines the persistence operations the engines need
// from the account store. Context is included for cancellation/timeouts.
type AccountRepository interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate
	// when the account ID or referral code already exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves an account by its ID. Returns
	// apperrors.ErrNotFound when no such account exists.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByReferralCode retrieves an account by its normalized
	// (upper-case) referral code. Read-only; returns apperrors.ErrNotFound
	// when no account carries the code.
	FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error)

	// ApplyBonusAward commits a staged bonus award: the account field
	// updates, the balance delta, and the ledger entries, all within one
	// transaction. The update is conditional on last_login_bonus_at still
	// holding the value observed during evaluation; when a concurrent
	// session already won the award, ApplyBonusAward returns
	// apperrors.ErrConflict and writes nothing.
	ApplyBonusAward(ctx context.Context, award domain.BonusAward) error

	// TransferPoints moves amount points from the sender to the account
	// identified by the normalized receiver code, within one transaction
	// that performs the receiver lookup, the existence and balance checks,
	// the debit, the credit, and both ledger entries. It returns the
	// sender's resulting balance, or one of the transfer domain errors
	// (apperrors.ErrInsufficientBalance, ErrReceiverNotFound,
	// ErrSelfTransfer, ErrNonPositiveAmount, ErrSenderNotFound).
	TransferPoints(ctx context.Context, senderID, receiverCode string, amount int64) (int64, error)
}

// LedgerRepository defines read operations over ledger entries. Entries
// are append-only and written exclusively inside the bonus and transfer
// transactions; there is no standalone insert path.
type LedgerRepository interface {
	// ListEntriesByAccountID retrieves a page of an account's entries,
	// newest first.
	ListEntriesByAccountID(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error)
}
