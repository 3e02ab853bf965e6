package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/middleware"
)

// tipHandler handles the capture boundary called for every gratuity.
type tipHandler struct {
	allocationService portssvc.AllocationSvcFacade
}

func newTipHandler(as portssvc.AllocationSvcFacade) *tipHandler {
	return &tipHandler{allocationService: as}
}

// registerTipRoutes registers the tip capture route.
func registerTipRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade) {
	h := newTipHandler(allocationService)
	rg.POST("/tips", h.captureTip)
}

// captureTip godoc
// @Summary Capture and allocate a gratuity
// @Description Slices a captured tip by table ownership and group segments and posts all ledger credits atomically. Replaying the same (orderID, paymentID) returns the committed result unchanged.
// @Tags tips
// @Accept  json
// @Produce  json
// @Param   tip body dto.CaptureTipRequest true "Captured gratuity"
// @Success 200 {object} dto.AllocateTipResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /tips [post]
func (h *tipHandler) captureTip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CaptureTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CaptureTip", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if _, ok := requireActor(c); !ok {
		return
	}

	resp, err := h.allocationService.Allocate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrNegativeTipAmount) || errors.Is(err, services.ErrFeeExceedsAmount) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
