package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/middleware"
)

// payoutHandler handles cash-out and payroll payout requests.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
}

func newPayoutHandler(ps portssvc.PayoutSvcFacade) *payoutHandler {
	return &payoutHandler{payoutService: ps}
}

// registerPayoutRoutes registers payout routes.
func registerPayoutRoutes(rg *gin.RouterGroup, payoutService portssvc.PayoutSvcFacade) {
	h := newPayoutHandler(payoutService)

	payouts := rg.Group("/payouts")
	{
		payouts.POST("/cashout", h.cashOut)
		payouts.POST("/payroll", h.batchPayroll)
	}
	rg.GET("/locations/:location_id/payouts", h.listPayouts)
}

// cashOut godoc
// @Summary Cash out an employee's tips
// @Description Pays out in cash, defaulting to the full balance. Insufficient or non-positive amounts answer 200 with success=false rather than an error.
// @Tags payouts
// @Accept  json
// @Produce  json
// @Param   cashout body dto.CashOutRequest true "Cash-out details"
// @Success 200 {object} dto.CashOutResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /payouts/cashout [post]
func (h *payoutHandler) cashOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CashOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CashOut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.payoutService.CashOut(c.Request.Context(), req.LocationID, req, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// batchPayroll godoc
// @Summary Run a payroll payout batch
// @Description Zeroes every positive balance of the location (optionally restricted to given employee IDs), one payroll debit per employee. Employees who fail are skipped and reported, not aborted.
// @Tags payouts
// @Accept  json
// @Produce  json
// @Param   batch body dto.BatchPayrollRequest true "Batch scope"
// @Success 200 {object} dto.PayrollSummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /payouts/payroll [post]
func (h *payoutHandler) batchPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BatchPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BatchPayroll", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.payoutService.BatchPayrollPayout(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listPayouts godoc
// @Summary List a location's payout history
// @Description Newest first, token paginated, filterable by employee, method and time window.
// @Tags payouts
// @Produce  json
// @Param   location_id path string true "Location ID"
// @Param   employeeID query string false "Employee filter"
// @Param   method query string false "Method filter (CASH or PAYROLL)"
// @Param   from query string false "Window start (RFC3339)"
// @Param   to query string false "Window end (RFC3339)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPayoutsResponse
// @Security BearerAuth
// @Router /locations/{location_id}/payouts [get]
func (h *payoutHandler) listPayouts(c *gin.Context) {
	var params dto.ListPayoutsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.payoutService.PayoutHistory(c.Request.Context(), c.Param("location_id"), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
