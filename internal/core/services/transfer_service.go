package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/machiport/points_backend/internal/apperrors"
	portsrepo "github.com/machiport/points_backend/internal/core/ports/repositories"
	portssvc "github.com/machiport/points_backend/internal/core/ports/services"
	"github.com/machiport/points_backend/internal/dto"
	"github.com/machiport/points_backend/internal/middleware"
)

// TransferService validates point transfers and delegates the atomic
// debit/credit to the account store's transactional procedure. It performs
// no read-then-write of its own: the store transaction is the only
// serialization point, so concurrent transfers from one sender cannot
// lose updates.
type TransferService struct {
	accountRepo portsrepo.AccountRepository
}

// NewTransferService creates a new TransferService.
func NewTransferService(accountRepo portsrepo.AccountRepository) *TransferService {
	return &TransferService{accountRepo: accountRepo}
}

// Ensure TransferService implements the portssvc.TransferSvcFacade interface
var _ portssvc.TransferSvcFacade = (*TransferService)(nil)

// Transfer runs the local pre-flight checks in order, short-circuiting on
// the first failure, then executes the transfer remotely. Every path
// returns a structured result; Transfer never raises to the caller.
func (s *TransferService) Transfer(ctx context.Context, senderID, receiverCode string, amount decimal.Decimal) dto.TransferResponse {
	logger := middleware.GetLoggerFromCtx(ctx)

	if senderID == "" {
		return transferFailure(dto.TransferErrNotLoggedIn, "ログインが必要です")
	}

	code := normalizeReferralCode(receiverCode)
	if code == "" {
		return transferFailure(dto.TransferErrEmptyReceiverCode, "送金先コードを入力してください")
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return transferFailure(dto.TransferErrInvalidAmount, "送金額が正しくありません")
	}
	if !amount.IsInteger() {
		return transferFailure(dto.TransferErrNotAnInteger, "送金額は整数で指定してください")
	}

	newBalance, err := s.accountRepo.TransferPoints(ctx, senderID, code, amount.IntPart())
	if err != nil {
		return s.mapTransferError(ctx, err)
	}

	logger.Info("Points transferred",
		slog.String("sender_id", senderID),
		slog.String("receiver_code", code),
		slog.Int64("amount", amount.IntPart()),
	)
	return dto.TransferResponse{
		Success:    true,
		Message:    "ポイントを送りました",
		NewBalance: &newBalance,
	}
}

// LookupReceiver resolves a code for the transfer confirmation screen.
// Read-only. A code nobody holds and a transient store failure are the
// same to the caller: Found=false, nothing else surfaced.
func (s *TransferService) LookupReceiver(ctx context.Context, code string) dto.ReceiverPreviewResponse {
	normalized := normalizeReferralCode(code)
	if normalized == "" {
		return dto.ReceiverPreviewResponse{Found: false}
	}

	acct, err := s.accountRepo.FindAccountByReferralCode(ctx, normalized)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("Receiver lookup failed", slog.String("error", err.Error()))
		}
		return dto.ReceiverPreviewResponse{Found: false}
	}

	return dto.ReceiverPreviewResponse{
		Found:     true,
		Name:      acct.DisplayName,
		AvatarURL: acct.AvatarURL,
	}
}

// mapTransferError converts the store's domain errors to localized,
// user-facing results. Unrecognized errors pass their message through
// under the UnknownError code.
func (s *TransferService) mapTransferError(ctx context.Context, err error) dto.TransferResponse {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		return transferFailure(dto.TransferErrInsufficientBalance, "残高が不足しています")
	case errors.Is(err, apperrors.ErrReceiverNotFound):
		return transferFailure(dto.TransferErrReceiverNotFound, "送金先が見つかりません")
	case errors.Is(err, apperrors.ErrSelfTransfer):
		return transferFailure(dto.TransferErrSelfTransfer, "自分自身には送金できません")
	case errors.Is(err, apperrors.ErrNonPositiveAmount):
		return transferFailure(dto.TransferErrNonPositiveAmount, "送金額は1ポイント以上を指定してください")
	case errors.Is(err, apperrors.ErrSenderNotFound):
		return transferFailure(dto.TransferErrSenderNotFound, "送金元のアカウントが見つかりません")
	default:
		middleware.GetLoggerFromCtx(ctx).Error("Transfer failed", slog.String("error", err.Error()))
		return transferFailure(dto.TransferErrUnknown, err.Error())
	}
}

// normalizeReferralCode trims and upper-cases a code. Codes are
// case-insensitive on input and stored upper-case.
func normalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func transferFailure(code, message string) dto.TransferResponse {
	return dto.TransferResponse{
		Success: false,
		Message: message,
		Error:   code,
	}
}
