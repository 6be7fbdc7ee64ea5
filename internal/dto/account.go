package dto

import (
	"time"

	"github.com/machiport/points_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new point
// account. Called by the registration flow once the identity provider has
// issued the user ID (taken from the token, not the body).
type CreateAccountRequest struct {
	DisplayName string     `json:"displayName" binding:"required,max=64"`
	AvatarURL   string     `json:"avatarURL" binding:"omitempty,url"`
	Birthday    *time.Time `json:"birthday"` // optional; month/day significant
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID            string     `json:"accountID"`
	DisplayName          string     `json:"displayName"`
	AvatarURL            string     `json:"avatarURL"`
	Points               int64      `json:"points"`
	Birthday             *time.Time `json:"birthday,omitempty"`
	ConsecutiveLoginDays int        `json:"consecutiveLoginDays"`
	ReferralCode         string     `json:"referralCode"`
	CreatedAt            time.Time  `json:"createdAt"`
	LastUpdatedAt        time.Time  `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:            acc.AccountID,
		DisplayName:          acc.DisplayName,
		AvatarURL:            acc.AvatarURL,
		Points:               acc.Points,
		Birthday:             acc.Birthday,
		ConsecutiveLoginDays: acc.ConsecutiveLoginDays,
		ReferralCode:         acc.ReferralCode,
		CreatedAt:            acc.CreatedAt,
		LastUpdatedAt:        acc.LastUpdatedAt,
	}
}
