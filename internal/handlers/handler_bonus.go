package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/machiport/points_backend/internal/core/ports/services"
	"github.com/machiport/points_backend/internal/dto"
	"github.com/machiport/points_backend/internal/middleware"
)

// bonusHandler handles HTTP requests related to login bonuses.
type bonusHandler struct {
	bonusService portssvc.BonusSvcFacade
}

func newBonusHandler(bs portssvc.BonusSvcFacade) *bonusHandler {
	return &bonusHandler{
		bonusService: bs,
	}
}

// registerBonusRoutes registers routes related to bonus awards.
func registerBonusRoutes(rg *gin.RouterGroup, bonusService portssvc.BonusSvcFacade) {
	h := newBonusHandler(bonusService)

	bonus := rg.Group("/bonus")
	{
		bonus.POST("/claim", h.claimBonus)
	}
}

// claimBonus godoc
// @Summary Claim login-time bonuses
// @Description Evaluates and awards the daily login bonus and birthday bonus for the logged-in user. Always succeeds; bonuses already granted today come back as not awarded.
// @Tags bonus
// @Produce  json
// @Success 200 {object} dto.BonusOutcomeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /bonus/claim [post]
func (h *bonusHandler) claimBonus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Account ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	outcome := h.bonusService.EvaluateAndAward(c.Request.Context(), accountID)
	c.JSON(http.StatusOK, dto.ToBonusOutcomeResponse(outcome))
}
