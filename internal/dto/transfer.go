package dto

import "github.com/shopspring/decimal"

// TransferRequest defines a point transfer. No binding constraints on
// purpose: the transfer service validates and answers with a structured
// result for every malformed input instead of an HTTP binding error.
// Amount is a decimal so that non-integer inputs (e.g. 10.5) survive
// parsing and can be rejected with their own reason code.
type TransferRequest struct {
	ReceiverCode string          `json:"receiverCode"`
	Amount       decimal.Decimal `json:"amount"`
}

// Transfer failure reason codes. Local validation and the remote
// procedure's domain errors share this namespace.
const (
	TransferErrNotLoggedIn         = "NotLoggedIn"
	TransferErrEmptyReceiverCode   = "EmptyReceiverCode"
	TransferErrInvalidAmount       = "InvalidAmount"
	TransferErrNotAnInteger        = "NotAnInteger"
	TransferErrInsufficientBalance = "InsufficientBalance"
	TransferErrReceiverNotFound    = "ReceiverNotFound"
	TransferErrSelfTransfer        = "SelfTransfer"
	TransferErrNonPositiveAmount   = "NonPositiveAmount"
	TransferErrSenderNotFound      = "SenderNotFound"
	TransferErrUnknown             = "UnknownError"
)

// TransferResponse is the structured result of a transfer attempt. Success
// or failure, the engine always yields this shape; Error carries the
// reason code on failure and NewBalance the sender's balance on success.
type TransferResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	NewBalance *int64 `json:"newBalance,omitempty"`
}

// ReceiverPreviewQuery binds the lookup query for the transfer-preview UI.
// The refcode rule is registered at startup; it accepts either case, and
// the service upper-cases the code before the store lookup.
type ReceiverPreviewQuery struct {
	Code string `form:"code" binding:"required,refcode"`
}

// ReceiverPreviewResponse is the read-only preview of a transfer
// destination. A missing code and a transient lookup failure are
// indistinguishable: both are Found=false.
type ReceiverPreviewResponse struct {
	Found     bool   `json:"found"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
