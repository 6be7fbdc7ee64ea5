package domain

import "time"

// Account represents a portal user's point account within the core domain.
// This is the primary representation used by services. The account row is
// created at registration and mutated only by the bonus engine (points and
// the bonus-eligibility markers) and the transfer engine (points).
type Account struct {
	AccountID   string `json:"accountID"` // Primary Key (UUID)
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarURL"`

	// Points is the current balance. It is always the sum of all ledger
	// effects ever applied to this account; every mutation updates the
	// balance and appends the matching ledger entries in one transaction.
	Points int64 `json:"points"`

	// Birthday is optional; only its month and day are significant.
	Birthday *time.Time `json:"birthday,omitempty"`

	// LastLoginBonusAt is the timestamp of the most recent daily login
	// bonus award. Nil until the first award.
	LastLoginBonusAt *time.Time `json:"lastLoginBonusAt,omitempty"`

	// ConsecutiveLoginDays counts the unbroken run of JST civil days on
	// which the daily bonus was awarded.
	ConsecutiveLoginDays int `json:"consecutiveLoginDays"`

	// LastBirthdayBonusYear is the calendar year of the most recent
	// birthday bonus. Nil until the first award.
	LastBirthdayBonusYear *int `json:"lastBirthdayBonusYear,omitempty"`

	// ReferralCode is the short upper-case code other users address
	// transfers to. Unique across accounts.
	ReferralCode string `json:"referralCode"`

	AuditFields
}
