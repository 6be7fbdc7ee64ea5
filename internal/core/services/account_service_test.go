package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/machiport/points_backend/internal/apperrors"
	"github.com/machiport/points_backend/internal/core/domain"
	"github.com/machiport/points_backend/internal/core/services"
	"github.com/machiport/points_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockAccountRepository
	mockLedgerRepo *MockLedgerRepository
	service        *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockLedgerRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateAccountRequest{
		DisplayName: "テスト太郎",
		AvatarURL:   "https://example.com/taro.png",
		Birthday:    &birthday,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("user-1", created.AccountID)
	suite.Equal("テスト太郎", created.DisplayName)
	suite.Equal(int64(0), created.Points)
	suite.Len(created.ReferralCode, 8)
	suite.Regexp(`^[A-Z0-9]{8}$`, created.ReferralCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RetriesOnCodeCollision() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{DisplayName: "テスト太郎"}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 2)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_GivesUpAfterRepeatedDuplicates() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{DisplayName: "テスト太郎"}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Times(3)

	created, err := suite.service.CreateAccount(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(created)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveAccount", 3)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, "ghost")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestListLedgerEntries_DefaultsAndCaps() {
	ctx := context.Background()
	entries := []domain.LedgerEntry{
		{EntryID: "e1", AccountID: "user-1", Amount: 10, Kind: domain.KindEarned},
	}

	suite.mockLedgerRepo.On("ListEntriesByAccountID", ctx, "user-1", 20, 0).Return(entries, nil).Once()
	got, err := suite.service.ListLedgerEntries(ctx, "user-1", 0, -5)
	suite.Require().NoError(err)
	suite.Len(got, 1)

	suite.mockLedgerRepo.On("ListEntriesByAccountID", ctx, "user-1", 100, 0).Return(entries, nil).Once()
	_, err = suite.service.ListLedgerEntries(ctx, "user-1", 500, 0)
	suite.Require().NoError(err)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListLedgerEntries_NilBecomesEmptySlice() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("ListEntriesByAccountID", ctx, "user-1", 20, 0).
		Return([]domain.LedgerEntry(nil), nil).Once()

	got, err := suite.service.ListLedgerEntries(ctx, "user-1", 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
