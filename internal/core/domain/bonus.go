package domain

import "time"

// Bonus amounts are fixed by the loyalty program.
const (
	DailyLoginBonusPoints int64 = 10
	BirthdayBonusPoints   int64 = 500
)

// DailyBonusResult reports the daily login bonus part of a session-start
// evaluation. ConsecutiveDays always reflects the resulting streak, whether
// or not an award happened on this call.
type DailyBonusResult struct {
	Awarded         bool  `json:"awarded"`
	Points          int64 `json:"points"`
	ConsecutiveDays int   `json:"consecutiveDays"`
}

// BirthdayBonusResult reports the birthday bonus part of a session-start
// evaluation.
type BirthdayBonusResult struct {
	Awarded bool  `json:"awarded"`
	Points  int64 `json:"points"`
}

// BonusOutcome is the result of one bonus-engine evaluation.
type BonusOutcome struct {
	Daily    DailyBonusResult    `json:"dailyBonus"`
	Birthday BirthdayBonusResult `json:"birthdayBonus"`
}

// BonusAward is the staged mutation a successful evaluation commits: the
// account field updates, the balance delta, and the ledger entries, applied
// as one atomic unit. Nil field pointers mean "leave unchanged".
type BonusAward struct {
	AccountID string

	// ObservedLastLoginBonusAt is the value read during evaluation. The
	// repository only applies the award while the stored value still
	// matches, so two sessions racing on the same day cannot both win.
	ObservedLastLoginBonusAt *time.Time

	NewLastLoginBonusAt      *time.Time
	NewConsecutiveLoginDays  *int
	NewLastBirthdayBonusYear *int

	PointsDelta int64
	Entries     []LedgerEntry
}
