package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/machiport/points_backend/internal/apperrors"
	"github.com/machiport/points_backend/internal/core/domain"
	"github.com/machiport/points_backend/internal/core/services"
	"github.com/machiport/points_backend/internal/utils/jstdate"
)

type BonusServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  *services.BonusService
	now      time.Time
}

func (suite *BonusServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	// Pin the clock to 2025-06-15 10:00 JST.
	suite.now = time.Date(2025, 6, 15, 10, 0, 0, 0, jstdate.JST)
	suite.service = services.NewBonusService(suite.mockRepo, services.WithNow(func() time.Time {
		return suite.now
	}))
}

func (suite *BonusServiceTestSuite) account(mutate func(*domain.Account)) *domain.Account {
	acct := &domain.Account{
		AccountID:    "user-1",
		DisplayName:  "テスト太郎",
		Points:       100,
		ReferralCode: "ABCD1234",
	}
	if mutate != nil {
		mutate(acct)
	}
	return acct
}

// expectApply registers an ApplyBonusAward expectation and captures the
// staged award for assertions.
func (suite *BonusServiceTestSuite) expectApply(captured *domain.BonusAward, result error) {
	suite.mockRepo.On("ApplyBonusAward", mock.Anything, mock.AnythingOfType("domain.BonusAward")).
		Run(func(args mock.Arguments) {
			*captured = args.Get(1).(domain.BonusAward)
		}).
		Return(result).Once()
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_FirstLogin() {
	ctx := context.Background()
	acct := suite.account(nil)
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	var award domain.BonusAward
	suite.expectApply(&award, nil)

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.True(outcome.Daily.Awarded)
	suite.Equal(int64(10), outcome.Daily.Points)
	suite.Equal(1, outcome.Daily.ConsecutiveDays)
	suite.False(outcome.Birthday.Awarded)

	suite.Equal("user-1", award.AccountID)
	suite.Nil(award.ObservedLastLoginBonusAt)
	suite.Require().NotNil(award.NewLastLoginBonusAt)
	suite.Equal(suite.now, *award.NewLastLoginBonusAt)
	suite.Require().NotNil(award.NewConsecutiveLoginDays)
	suite.Equal(1, *award.NewConsecutiveLoginDays)
	suite.Nil(award.NewLastBirthdayBonusYear)
	suite.Equal(int64(10), award.PointsDelta)
	suite.Require().Len(award.Entries, 1)
	suite.Equal(domain.KindEarned, award.Entries[0].Kind)
	suite.Equal(int64(10), award.Entries[0].Amount)
	suite.Equal("ログインボーナス（1日連続）", award.Entries[0].Description)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_SameDayIsNoOp() {
	ctx := context.Background()
	earlier := time.Date(2025, 6, 15, 0, 5, 0, 0, jstdate.JST)
	acct := suite.account(func(a *domain.Account) {
		a.LastLoginBonusAt = &earlier
		a.ConsecutiveLoginDays = 4
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.False(outcome.Daily.Awarded)
	suite.Equal(4, outcome.Daily.ConsecutiveDays)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyBonusAward", mock.Anything, mock.Anything)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_StreakContinues() {
	ctx := context.Background()
	yesterday := time.Date(2025, 6, 14, 23, 30, 0, 0, jstdate.JST)
	acct := suite.account(func(a *domain.Account) {
		a.LastLoginBonusAt = &yesterday
		a.ConsecutiveLoginDays = 4
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	var award domain.BonusAward
	suite.expectApply(&award, nil)

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.True(outcome.Daily.Awarded)
	suite.Equal(5, outcome.Daily.ConsecutiveDays)
	suite.Require().NotNil(award.NewConsecutiveLoginDays)
	suite.Equal(5, *award.NewConsecutiveLoginDays)
	suite.Require().NotNil(award.ObservedLastLoginBonusAt)
	suite.True(award.ObservedLastLoginBonusAt.Equal(yesterday))
	suite.Equal("ログインボーナス（5日連続）", award.Entries[0].Description)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_GapResetsStreak() {
	ctx := context.Background()
	threeDaysAgo := time.Date(2025, 6, 12, 9, 0, 0, 0, jstdate.JST)
	acct := suite.account(func(a *domain.Account) {
		a.LastLoginBonusAt = &threeDaysAgo
		a.ConsecutiveLoginDays = 9
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	var award domain.BonusAward
	suite.expectApply(&award, nil)

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.True(outcome.Daily.Awarded)
	suite.Equal(1, outcome.Daily.ConsecutiveDays)
	suite.Require().NotNil(award.NewConsecutiveLoginDays)
	suite.Equal(1, *award.NewConsecutiveLoginDays)
}

// A login just after midnight JST continues a streak from an award made
// just before midnight, even though both instants fall on June 14 in UTC.
func (suite *BonusServiceTestSuite) TestEvaluateAndAward_MidnightBoundary() {
	ctx := context.Background()
	lastAward := time.Date(2025, 6, 14, 14, 59, 0, 0, time.UTC) // 23:59 JST June 14
	suite.now = time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)   // 00:00 JST June 15
	acct := suite.account(func(a *domain.Account) {
		a.LastLoginBonusAt = &lastAward
		a.ConsecutiveLoginDays = 2
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	var award domain.BonusAward
	suite.expectApply(&award, nil)

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.True(outcome.Daily.Awarded)
	suite.Equal(3, outcome.Daily.ConsecutiveDays)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_BirthdayBonus() {
	ctx := context.Background()
	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	acct := suite.account(func(a *domain.Account) {
		a.Birthday = &birthday
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	var award domain.BonusAward
	suite.expectApply(&award, nil)

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.True(outcome.Daily.Awarded)
	suite.True(outcome.Birthday.Awarded)
	suite.Equal(int64(500), outcome.Birthday.Points)

	suite.Equal(int64(510), award.PointsDelta)
	suite.Require().NotNil(award.NewLastBirthdayBonusYear)
	suite.Equal(2025, *award.NewLastBirthdayBonusYear)
	suite.Require().Len(award.Entries, 2)
	suite.Equal(int64(500), award.Entries[1].Amount)
	suite.Equal("バースデーボーナス（2025年）", award.Entries[1].Description)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_BirthdayOncePerYear() {
	ctx := context.Background()
	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	grantedYear := 2025
	acct := suite.account(func(a *domain.Account) {
		a.Birthday = &birthday
		a.LastBirthdayBonusYear = &grantedYear
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	var award domain.BonusAward
	suite.expectApply(&award, nil)

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.True(outcome.Daily.Awarded)
	suite.False(outcome.Birthday.Awarded)
	suite.Equal(int64(10), award.PointsDelta)
	suite.Nil(award.NewLastBirthdayBonusYear)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_BirthdayGrantedLastYear() {
	ctx := context.Background()
	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	grantedYear := 2024
	acct := suite.account(func(a *domain.Account) {
		a.Birthday = &birthday
		a.LastBirthdayBonusYear = &grantedYear
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	var award domain.BonusAward
	suite.expectApply(&award, nil)

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.True(outcome.Birthday.Awarded)
	suite.Require().NotNil(award.NewLastBirthdayBonusYear)
	suite.Equal(2025, *award.NewLastBirthdayBonusYear)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_BirthdayNotToday() {
	ctx := context.Background()
	birthday := time.Date(1990, 12, 24, 0, 0, 0, 0, time.UTC)
	acct := suite.account(func(a *domain.Account) {
		a.Birthday = &birthday
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()

	var award domain.BonusAward
	suite.expectApply(&award, nil)

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.False(outcome.Birthday.Awarded)
	suite.Equal(int64(10), award.PointsDelta)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_ConflictIsNeutral() {
	ctx := context.Background()
	acct := suite.account(func(a *domain.Account) {
		a.ConsecutiveLoginDays = 7
	})
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()
	suite.mockRepo.On("ApplyBonusAward", mock.Anything, mock.AnythingOfType("domain.BonusAward")).
		Return(apperrors.ErrConflict).Once()

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.False(outcome.Daily.Awarded)
	suite.False(outcome.Birthday.Awarded)
	suite.Equal(7, outcome.Daily.ConsecutiveDays)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_StoreFailureIsNeutral() {
	ctx := context.Background()
	acct := suite.account(nil)
	suite.mockRepo.On("FindAccountByID", ctx, "user-1").Return(acct, nil).Once()
	suite.mockRepo.On("ApplyBonusAward", mock.Anything, mock.AnythingOfType("domain.BonusAward")).
		Return(errors.New("connection reset")).Once()

	outcome := suite.service.EvaluateAndAward(ctx, "user-1")

	suite.False(outcome.Daily.Awarded)
	suite.False(outcome.Birthday.Awarded)
}

func (suite *BonusServiceTestSuite) TestEvaluateAndAward_AccountMissingIsNeutral() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	outcome := suite.service.EvaluateAndAward(ctx, "ghost")

	suite.False(outcome.Daily.Awarded)
	suite.False(outcome.Birthday.Awarded)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyBonusAward", mock.Anything, mock.Anything)
}

func TestBonusServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BonusServiceTestSuite))
}
