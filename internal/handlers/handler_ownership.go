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

// ownershipHandler handles joint table ownership requests.
type ownershipHandler struct {
	ownershipService portssvc.OwnershipSvcFacade
}

func newOwnershipHandler(os portssvc.OwnershipSvcFacade) *ownershipHandler {
	return &ownershipHandler{ownershipService: os}
}

// registerOwnershipRoutes registers order ownership routes.
func registerOwnershipRoutes(rg *gin.RouterGroup, ownershipService portssvc.OwnershipSvcFacade) {
	h := newOwnershipHandler(ownershipService)

	orders := rg.Group("/orders/:order_id/owners")
	{
		orders.POST("", h.addOwner)
		orders.GET("", h.getOwnership)
		orders.DELETE("/:employee_id", h.removeOwner)
		orders.PUT("/splits", h.setSplits)
	}
}

func isOwnershipRuleViolation(err error) bool {
	return errors.Is(err, services.ErrAlreadyOwner) ||
		errors.Is(err, services.ErrOwnerNotFound) ||
		errors.Is(err, services.ErrInvalidSplitTotal) ||
		errors.Is(err, services.ErrNewOwnerNotActive) ||
		errors.Is(err, services.ErrCurrentOwnerRequired) ||
		errors.Is(err, services.ErrInvalidSharePercent)
}

// addOwner godoc
// @Summary Add a co-owner to an order
// @Description Adds an employee as owner. The second owner converts the order to multi-owner; explicit percents scale existing owners down proportionally.
// @Tags ownership
// @Accept  json
// @Produce  json
// @Param   order_id path string true "Order ID"
// @Param   owner body dto.AddOwnerRequest true "New owner"
// @Success 200 {object} dto.OwnershipResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /orders/{order_id}/owners [post]
func (h *ownershipHandler) addOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddOwner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.ownershipService.AddOwner(c.Request.Context(), req.LocationID, c.Param("order_id"), req, actorID)
	if err != nil {
		if isOwnershipRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getOwnership godoc
// @Summary Get an order's active ownership
// @Description Returns the multi-owner record, or 404 for single-owner orders.
// @Tags ownership
// @Produce  json
// @Param   order_id path string true "Order ID"
// @Success 200 {object} dto.OwnershipResponse
// @Failure 404 {object} map[string]string "No multi-owner record"
// @Security BearerAuth
// @Router /orders/{order_id}/owners [get]
func (h *ownershipHandler) getOwnership(c *gin.Context) {
	ownership, err := h.ownershipService.GetOwnership(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ownership == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order has no multi-owner record"})
		return
	}
	c.JSON(http.StatusOK, dto.ToOwnershipResponse(ownership))
}

// removeOwner godoc
// @Summary Remove a co-owner from an order
// @Description One remaining owner collapses to 100%; removing the last owner deactivates the record.
// @Tags ownership
// @Produce  json
// @Param   order_id path string true "Order ID"
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} dto.OwnershipResponse
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /orders/{order_id}/owners/{employee_id} [delete]
func (h *ownershipHandler) removeOwner(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.ownershipService.RemoveOwner(c.Request.Context(), c.Param("order_id"), c.Param("employee_id"), actorID)
	if err != nil {
		if isOwnershipRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// setSplits godoc
// @Summary Replace all owner percentages
// @Description The percentages must cover every current owner and sum to 100 within a 0.01 tolerance.
// @Tags ownership
// @Accept  json
// @Produce  json
// @Param   order_id path string true "Order ID"
// @Param   splits body dto.SetSplitsRequest true "Owner percentages"
// @Success 200 {object} dto.OwnershipResponse
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /orders/{order_id}/owners/splits [put]
func (h *ownershipHandler) setSplits(c *gin.Context) {
	var req dto.SetSplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.ownershipService.SetSplits(c.Request.Context(), c.Param("order_id"), req, actorID)
	if err != nil {
		if isOwnershipRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
