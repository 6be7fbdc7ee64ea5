package domain

import "time"

// EntryKind classifies the effect of a ledger entry on the balance.
type EntryKind string

const (
	// KindEarned marks a positive effect: bonus awards and received transfers.
	KindEarned EntryKind = "EARNED"
	// KindSpent marks a negative effect: sent transfers.
	KindSpent EntryKind = "SPENT"
)

// LedgerEntry is an immutable record of one point movement. Entries are
// append-only; they are never updated or deleted.
type LedgerEntry struct {
	EntryID     string    `json:"entryID"` // Primary Key (UUID)
	AccountID   string    `json:"accountID"`
	Amount      int64     `json:"amount"` // signed effect on the balance
	Kind        EntryKind `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
