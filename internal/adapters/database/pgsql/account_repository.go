package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/machiport/points_backend/internal/apperrors"
	"github.com/machiport/points_backend/internal/core/domain"
	portsrepo "github.com/machiport/points_backend/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, display_name, avatar_url, points, birthday, last_login_bonus_at, consecutive_login_days, last_birthday_bonus_year, referral_code, created_at, last_updated_at`

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.DisplayName,
		account.AvatarURL,
		account.Points,
		account.Birthday,
		account.LastLoginBonusAt,
		account.ConsecutiveLoginDays,
		account.LastBirthdayBonusYear,
		account.ReferralCode,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1;
	`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountByReferralCode retrieves an account by its upper-case
// referral code. Read-only.
func (r *PgxAccountRepository) FindAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE referral_code = $1;
	`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by referral code: %w", err)
	}
	return account, nil
}

// ApplyBonusAward commits a staged bonus award within one transaction: the
// conditional account update, the balance delta, and the ledger entries.
// The guard on last_login_bonus_at keeps two same-day sessions from both
// winning the award; the loser gets apperrors.ErrConflict and no write.
func (r *PgxAccountRepository) ApplyBonusAward(ctx context.Context, award domain.BonusAward) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	updateQuery := `
		UPDATE accounts
		SET points = points + $2,
		    last_login_bonus_at = COALESCE($3, last_login_bonus_at),
		    consecutive_login_days = COALESCE($4, consecutive_login_days),
		    last_birthday_bonus_year = COALESCE($5, last_birthday_bonus_year),
		    last_updated_at = $6
		WHERE account_id = $1
		  AND last_login_bonus_at IS NOT DISTINCT FROM $7;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		award.AccountID,
		award.PointsDelta,
		award.NewLastLoginBonusAt,
		award.NewConsecutiveLoginDays,
		award.NewLastBirthdayBonusYear,
		time.Now(),
		award.ObservedLastLoginBonusAt,
	)
	if err != nil {
		return fmt.Errorf("failed to apply bonus award for account %s: %w", award.AccountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the account vanished or another session moved
		// last_login_bonus_at since we read it.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`, award.AccountID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check account %s after conditional update: %w", award.AccountID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}

	batch := &pgx.Batch{}
	queueLedgerEntries(batch, award.Entries)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert ledger entries for account %s: %w", award.AccountID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bonus award for account %s: %w", award.AccountID, err)
	}
	return nil
}

// scanAccount reads one account row. Works for both pool and tx rows.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.DisplayName,
		&acc.AvatarURL,
		&acc.Points,
		&acc.Birthday,
		&acc.LastLoginBonusAt,
		&acc.ConsecutiveLoginDays,
		&acc.LastBirthdayBonusYear,
		&acc.ReferralCode,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
