package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/machiport/points_backend/internal/core/ports/services"
	"github.com/machiport/points_backend/internal/dto"
	"github.com/machiport/points_backend/internal/middleware"
)

// transferHandler handles HTTP requests related to point transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: ts,
	}
}

// registerTransferRoutes registers routes related to point transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade, transferLimiter *limiter.Limiter) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", middleware.RateLimit(transferLimiter), h.createTransfer)
		transfers.GET("/receiver", h.lookupReceiver)
	}
}

// createTransfer godoc
// @Summary Send points to another user
// @Description Transfers points from the logged-in user to the account owning the given referral code. The response is always HTTP 200 with a structured result; failures carry a machine-readable error code and a localized message.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// senderID may be absent; the service turns that into a structured
	// NotLoggedIn result rather than an HTTP error.
	senderID, _ := middleware.GetUserIDFromContext(c)

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, dto.TransferResponse{
			Success: false,
			Message: "リクエストの形式が正しくありません",
			Error:   dto.TransferErrUnknown,
		})
		return
	}

	result := h.transferService.Transfer(c.Request.Context(), senderID, req.ReceiverCode, req.Amount)
	c.JSON(http.StatusOK, result)
}

// lookupReceiver godoc
// @Summary Preview the receiver for a referral code
// @Description Returns the display name and avatar of the account owning the given referral code. Unknown codes and lookup failures both come back as found=false.
// @Tags transfers
// @Produce  json
// @Param   code query string true "Receiver referral code"
// @Success 200 {object} dto.ReceiverPreviewResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transfers/receiver [get]
func (h *transferHandler) lookupReceiver(c *gin.Context) {
	var query dto.ReceiverPreviewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusOK, dto.ReceiverPreviewResponse{Found: false})
		return
	}

	result := h.transferService.LookupReceiver(c.Request.Context(), query.Code)
	c.JSON(http.StatusOK, result)
}
