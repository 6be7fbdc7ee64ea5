package dto

import "github.com/machiport/points_backend/internal/core/domain"

// DailyBonusResponse reports the daily login bonus part of a claim.
type DailyBonusResponse struct {
	Awarded         bool  `json:"awarded"`
	Points          int64 `json:"points"`
	ConsecutiveDays int   `json:"consecutiveDays"`
}

// BirthdayBonusResponse reports the birthday bonus part of a claim.
type BirthdayBonusResponse struct {
	Awarded bool  `json:"awarded"`
	Points  int64 `json:"points"`
}

// BonusOutcomeResponse is returned by the session-start bonus claim.
type BonusOutcomeResponse struct {
	DailyBonus    DailyBonusResponse    `json:"dailyBonus"`
	BirthdayBonus BirthdayBonusResponse `json:"birthdayBonus"`
}

// ToBonusOutcomeResponse converts a domain.BonusOutcome to its DTO.
func ToBonusOutcomeResponse(o domain.BonusOutcome) BonusOutcomeResponse {
	return BonusOutcomeResponse{
		DailyBonus: DailyBonusResponse{
			Awarded:         o.Daily.Awarded,
			Points:          o.Daily.Points,
			ConsecutiveDays: o.Daily.ConsecutiveDays,
		},
		BirthdayBonus: BirthdayBonusResponse{
			Awarded: o.Birthday.Awarded,
			Points:  o.Birthday.Points,
		},
	}
}
