package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/machiport/points_backend/internal/apperrors"
	"github.com/machiport/points_backend/internal/core/domain"
)

// TransferPoints moves amount points from the sender to the account owning
// receiverCode, all within a single transaction. Both account rows are
// locked in account_id order so two opposing transfers cannot deadlock.
// Returns the sender's balance after the debit.
func (r *PgxAccountRepository) TransferPoints(ctx context.Context, senderID, receiverCode string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperrors.ErrNonPositiveAmount
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var receiverID string
	err = tx.QueryRow(ctx, `SELECT account_id FROM accounts WHERE referral_code = $1`, receiverCode).Scan(&receiverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrReceiverNotFound
		}
		return 0, fmt.Errorf("failed to resolve referral code: %w", err)
	}
	if receiverID == senderID {
		return 0, apperrors.ErrSelfTransfer
	}

	balances, err := lockAccountBalances(ctx, tx, []string{senderID, receiverID})
	if err != nil {
		return 0, err
	}
	senderPoints, ok := balances[senderID]
	if !ok {
		return 0, apperrors.ErrSenderNotFound
	}
	if _, ok := balances[receiverID]; !ok {
		return 0, apperrors.ErrReceiverNotFound
	}
	if senderPoints < amount {
		return 0, apperrors.ErrInsufficientBalance
	}

	now := time.Now()
	batch := &pgx.Batch{}
	batch.Queue(`UPDATE accounts SET points = points - $2, last_updated_at = $3 WHERE account_id = $1`, senderID, amount, now)
	batch.Queue(`UPDATE accounts SET points = points + $2, last_updated_at = $3 WHERE account_id = $1`, receiverID, amount, now)
	queueLedgerEntries(batch, []domain.LedgerEntry{
		{
			EntryID:     uuid.NewString(),
			AccountID:   senderID,
			Amount:      -amount,
			Kind:        domain.KindSpent,
			Description: fmt.Sprintf("ポイント送付（%s宛）", receiverCode),
			CreatedAt:   now,
		},
		{
			EntryID:     uuid.NewString(),
			AccountID:   receiverID,
			Amount:      amount,
			Kind:        domain.KindEarned,
			Description: "ポイント受取",
			CreatedAt:   now,
		},
	})
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to apply transfer from %s: %w", senderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transfer from %s: %w", senderID, err)
	}
	return senderPoints - amount, nil
}

// lockAccountBalances takes row locks on the given accounts and returns
// their current balances keyed by account ID.
func lockAccountBalances(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]int64, error) {
	query := `
		SELECT account_id, points
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]int64, len(accountIDs))
	for rows.Next() {
		var id string
		var points int64
		if err := rows.Scan(&id, &points); err != nil {
			return nil, fmt.Errorf("failed to scan locked account: %w", err)
		}
		balances[id] = points
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locked accounts: %w", err)
	}
	return balances, nil
}
