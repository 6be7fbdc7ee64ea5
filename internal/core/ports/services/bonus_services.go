package services

import (
	"context"

	"github.com/machiport/points_backend/internal/core/domain"
)

// BonusSvcFacade is the session-start bonus engine.
type BonusSvcFacade interface {
	// EvaluateAndAward decides whether a daily login bonus and/or a
	// birthday bonus is due today (JST), commits the award atomically,
	// and reports the outcome. It never fails the caller: any store
	// failure yields a neutral "nothing awarded" outcome, and the
	// award's date guard makes a repeated call within one day a no-op.
	EvaluateAndAward(ctx context.Context, accountID string) domain.BonusOutcome
}
