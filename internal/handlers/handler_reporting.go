package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
)

// reportingHandler serves shift-closeout and payroll display reads.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/locations/:location_id/payable-balances", h.payableBalances)
	rg.GET("/employees/:employee_id/checkout", h.groupCheckout)
}

// payableBalances godoc
// @Summary List positive tip balances for a location
// @Description Payroll display read. Sorted by balance descending.
// @Tags reporting
// @Produce  json
// @Param   location_id path string true "Location ID"
// @Success 200 {array} domain.EmployeeBalance
// @Security BearerAuth
// @Router /locations/{location_id}/payable-balances [get]
func (h *reportingHandler) payableBalances(c *gin.Context) {
	balances, err := h.reportingService.PayableBalances(c.Request.Context(), c.Param("location_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}

// groupCheckout godoc
// @Summary Shift-closeout tip breakdown for an employee
// @Description Splits the window's credited tips into solo stretches and group segments, enriching each segment with its historical split share.
// @Tags reporting
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Param   from query string true "Window start (RFC3339)"
// @Param   to query string true "Window end (RFC3339)"
// @Success 200 {object} dto.GroupCheckoutResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Security BearerAuth
// @Router /employees/{employee_id}/checkout [get]
func (h *reportingHandler) groupCheckout(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' timestamp: " + err.Error()})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' timestamp: " + err.Error()})
		return
	}
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' must be after 'from'"})
		return
	}

	resp, err := h.reportingService.GroupCheckout(c.Request.Context(), c.Param("employee_id"), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
