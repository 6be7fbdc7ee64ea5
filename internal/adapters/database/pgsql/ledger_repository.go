package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/machiport/points_backend/internal/core/domain"
	portsrepo "github.com/machiport/points_backend/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerRepository creates a new repository for ledger entries.
func NewPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const insertLedgerEntryQuery = `
	INSERT INTO ledger_entries (entry_id, account_id, amount, kind, description, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
`

// queueLedgerEntries adds one insert per entry to the batch. Entries are
// only ever written inside the bonus-award and transfer transactions, so
// callers run the batch within their own tx.
func queueLedgerEntries(batch *pgx.Batch, entries []domain.LedgerEntry) {
	for _, entry := range entries {
		batch.Queue(insertLedgerEntryQuery,
			entry.EntryID,
			entry.AccountID,
			entry.Amount,
			entry.Kind,
			entry.Description,
			entry.CreatedAt,
		)
	}
}

// ListEntriesByAccountID returns the account's ledger, newest first.
func (r *PgxLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, account_id, amount, kind, description, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0, limit)
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.AccountID,
			&entry.Amount,
			&entry.Kind,
			&entry.Description,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger entries: %w", err)
	}
	return entries, nil
}
