package dto

import (
	"time"

	"github.com/machiport/points_backend/internal/core/domain"
)

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID     string           `json:"entryID"`
	AccountID   string           `json:"accountID"`
	Amount      int64            `json:"amount"`
	Kind        domain.EntryKind `json:"kind"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ListLedgerParams defines query parameters for listing ledger entries.
type ListLedgerParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListLedgerResponse wraps a page of ledger entries, newest first.
type ListLedgerResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// ToLedgerEntryResponses converts domain ledger entries to DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = LedgerEntryResponse{
			EntryID:     e.EntryID,
			AccountID:   e.AccountID,
			Amount:      e.Amount,
			Kind:        e.Kind,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
		}
	}
	return res
}
