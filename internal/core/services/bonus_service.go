package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/machiport/points_backend/internal/apperrors"
	"github.com/machiport/points_backend/internal/core/domain"
	portsrepo "github.com/machiport/points_backend/internal/core/ports/repositories"
	portssvc "github.com/machiport/points_backend/internal/core/ports/services"
	"github.com/machiport/points_backend/internal/middleware"
	"github.com/machiport/points_backend/internal/utils/jstdate"
)

// BonusService evaluates session-start bonuses: the daily login bonus with
// its streak counter and the once-per-year birthday bonus. Eligibility is
// decided on the JST civil day regardless of where the caller or the
// server runs.
type BonusService struct {
	accountRepo portsrepo.AccountRepository
	now         func() time.Time
}

// BonusServiceOption customizes a BonusService.
type BonusServiceOption func(*BonusService)

// WithNow overrides the clock. Used by tests to pin "today".
func WithNow(now func() time.Time) BonusServiceOption {
	return func(s *BonusService) {
		s.now = now
	}
}

// NewBonusService creates a new BonusService.
func NewBonusService(accountRepo portsrepo.AccountRepository, opts ...BonusServiceOption) *BonusService {
	s := &BonusService{
		accountRepo: accountRepo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure BonusService implements the portssvc.BonusSvcFacade interface
var _ portssvc.BonusSvcFacade = (*BonusService)(nil)

// EvaluateAndAward loads the account, stages any bonuses due today, and
// commits them in one atomic repository call. It deliberately has no error
// return: session startup must never be blocked by bonus bookkeeping, so
// every failure collapses into a neutral "nothing awarded" outcome and the
// cause is logged instead of propagated. Calling it twice on the same day
// is harmless; the date guard makes the second call a read-only no-op.
func (s *BonusService) EvaluateAndAward(ctx context.Context, accountID string) domain.BonusOutcome {
	logger := middleware.GetLoggerFromCtx(ctx)

	acct, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load account for bonus evaluation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return domain.BonusOutcome{}
	}

	now := s.now()
	today := jstdate.FromTime(now)

	outcome := domain.BonusOutcome{
		Daily: domain.DailyBonusResult{ConsecutiveDays: acct.ConsecutiveLoginDays},
	}
	award := domain.BonusAward{
		AccountID:                accountID,
		ObservedLastLoginBonusAt: acct.LastLoginBonusAt,
	}

	if daily, ok := s.stageDailyBonus(acct, now, today, &award); ok {
		outcome.Daily = daily
	}
	if birthday, ok := s.stageBirthdayBonus(acct, now, today, &award); ok {
		outcome.Birthday = birthday
	}

	if award.PointsDelta == 0 {
		// Nothing due; no write happens at all.
		return outcome
	}

	if err := s.accountRepo.ApplyBonusAward(ctx, award); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent session committed first. Its award stands and
			// ours is discarded whole, so report nothing awarded.
			logger.Info("Bonus already awarded by a concurrent session", slog.String("account_id", accountID))
		} else {
			logger.Error("Failed to commit bonus award", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return domain.BonusOutcome{
			Daily: domain.DailyBonusResult{ConsecutiveDays: acct.ConsecutiveLoginDays},
		}
	}

	logger.Info("Bonus awarded",
		slog.String("account_id", accountID),
		slog.Int64("points", award.PointsDelta),
		slog.Int("consecutive_days", outcome.Daily.ConsecutiveDays),
		slog.Bool("birthday", outcome.Birthday.Awarded),
	)
	return outcome
}

// stageDailyBonus stages the daily login bonus when none has been awarded
// today. The streak continues only when the previous award landed exactly
// yesterday (JST); any gap resets it to 1.
func (s *BonusService) stageDailyBonus(acct *domain.Account, now time.Time, today jstdate.CivilDate, award *domain.BonusAward) (domain.DailyBonusResult, bool) {
	if acct.LastLoginBonusAt != nil && jstdate.FromTime(*acct.LastLoginBonusAt) == today {
		return domain.DailyBonusResult{}, false
	}

	streak := 1
	if acct.LastLoginBonusAt != nil && jstdate.FromTime(*acct.LastLoginBonusAt) == today.AddDays(-1) {
		streak = acct.ConsecutiveLoginDays + 1
	}

	awardedAt := now
	award.NewLastLoginBonusAt = &awardedAt
	award.NewConsecutiveLoginDays = &streak
	award.PointsDelta += domain.DailyLoginBonusPoints
	award.Entries = append(award.Entries, domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   acct.AccountID,
		Amount:      domain.DailyLoginBonusPoints,
		Kind:        domain.KindEarned,
		Description: fmt.Sprintf("ログインボーナス（%d日連続）", streak),
		CreatedAt:   now,
	})

	return domain.DailyBonusResult{
		Awarded:         true,
		Points:          domain.DailyLoginBonusPoints,
		ConsecutiveDays: streak,
	}, true
}

// stageBirthdayBonus stages the birthday bonus when today matches the
// stored birthday's month/day and no award was made this calendar year.
// The birthday's own year, if any, is ignored.
func (s *BonusService) stageBirthdayBonus(acct *domain.Account, now time.Time, today jstdate.CivilDate, award *domain.BonusAward) (domain.BirthdayBonusResult, bool) {
	if acct.Birthday == nil {
		return domain.BirthdayBonusResult{}, false
	}
	// The stored birthday is a plain calendar date; read its fields
	// directly rather than converting zones.
	birth := jstdate.CivilDate{
		Year:  acct.Birthday.Year(),
		Month: acct.Birthday.Month(),
		Day:   acct.Birthday.Day(),
	}
	if !today.MatchesMonthDay(birth) {
		return domain.BirthdayBonusResult{}, false
	}
	if acct.LastBirthdayBonusYear != nil && *acct.LastBirthdayBonusYear == today.Year {
		return domain.BirthdayBonusResult{}, false
	}

	year := today.Year
	award.NewLastBirthdayBonusYear = &year
	award.PointsDelta += domain.BirthdayBonusPoints
	award.Entries = append(award.Entries, domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   acct.AccountID,
		Amount:      domain.BirthdayBonusPoints,
		Kind:        domain.KindEarned,
		Description: fmt.Sprintf("バースデーボーナス（%d年）", year),
		CreatedAt:   now,
	})

	return domain.BirthdayBonusResult{
		Awarded: true,
		Points:  domain.BirthdayBonusPoints,
	}, true
}
