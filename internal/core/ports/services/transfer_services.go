package services

import (
	"context"

	"github.com/machiport/points_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TransferSvcFacade is the peer-to-peer point transfer engine.
type TransferSvcFacade interface {
	// Transfer validates the request locally, then delegates the actual
	// debit/credit to the store's single transactional procedure. Every
	// path, including infrastructure failure, returns a structured result;
	// Transfer never panics or raises.
	Transfer(ctx context.Context, senderID, receiverCode string, amount decimal.Decimal) dto.TransferResponse

	// LookupReceiver resolves a referral code to a display preview for the
	// transfer confirmation screen. Read-only; a missing code and a lookup
	// failure both come back as Found=false.
	LookupReceiver(ctx context.Context, code string) dto.ReceiverPreviewResponse
}
