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

// ledgerHandler exposes ledger reads and maintenance operations.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers ledger routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	employees := rg.Group("/employees/:employee_id")
	{
		employees.GET("/balance", h.getBalance)
		employees.GET("/ledger-entries", h.listEntries)
		employees.POST("/ledger", h.createLedger)
		employees.POST("/recalculate", h.recalculate)
	}
	rg.POST("/transfers", h.transfer)
}

func isLedgerRuleViolation(err error) bool {
	return errors.Is(err, services.ErrAmountSignMismatch) ||
		errors.Is(err, services.ErrZeroAmountEntry) ||
		errors.Is(err, services.ErrInsufficientBalance) ||
		errors.Is(err, services.ErrSelfTransfer)
}

// getBalance godoc
// @Summary Get an employee's tip balance
// @Description Fast cached read. Employees without a ledger report zero.
// @Tags ledger
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} dto.BalanceResponse
// @Security BearerAuth
// @Router /employees/{employee_id}/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	employeeID := c.Param("employee_id")

	balance, err := h.ledgerService.Balance(c.Request.Context(), employeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{EmployeeID: employeeID, BalanceCents: balance})
}

// listEntries godoc
// @Summary List an employee's ledger entries
// @Description Newest first, token paginated, filterable by source type and time window.
// @Tags ledger
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Param   sourceTypes query []string false "Source type filter"
// @Param   from query string false "Window start (RFC3339)"
// @Param   to query string false "Window end (RFC3339)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /employees/{employee_id}/ledger-entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.Entries(c.Request.Context(), c.Param("employee_id"), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createLedgerRequest scopes a lazy ledger creation to a location.
type createLedgerRequest struct {
	LocationID string `json:"locationID" binding:"required"`
}

// createLedger godoc
// @Summary Ensure an employee's ledger exists
// @Description Idempotent. Returns the existing ledger or creates a zero-balance one.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Param   ledger body createLedgerRequest true "Location scope"
// @Success 200 {object} domain.Ledger
// @Security BearerAuth
// @Router /employees/{employee_id}/ledger [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	var req createLedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.GetOrCreate(c.Request.Context(), c.Param("employee_id"), req.LocationID, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// recalculate godoc
// @Summary Recalculate an employee's cached balance
// @Description Re-sums all entries under a row lock and repairs any drift.
// @Tags ledger
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} dto.RecalculateResponse
// @Failure 404 {object} map[string]string "No ledger"
// @Security BearerAuth
// @Router /employees/{employee_id}/recalculate [post]
func (h *ledgerHandler) recalculate(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.Recalculate(c.Request.Context(), c.Param("employee_id"), actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RecalculateResponse{
		EmployeeID:      result.EmployeeID,
		CachedCents:     result.CachedCents,
		CalculatedCents: result.CalculatedCents,
		Repaired:        result.Repaired,
	})
}

// transfer godoc
// @Summary Transfer tip balance between employees
// @Description Posts a paired debit and credit atomically. Fails when the source balance is insufficient.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /transfers [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.Transfer(c.Request.Context(), req.LocationID, req, actorID)
	if err != nil {
		if isLedgerRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: dto.ToLedgerEntryResponses(entries)})
}
