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

// employeeHandler manages staff records.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{employeeService: es}
}

// registerEmployeeRoutes registers employee management routes.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(employeeService)

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("/:employee_id", h.getEmployee)
		employees.DELETE("/:employee_id", h.deactivateEmployee)
	}
	rg.GET("/locations/:location_id/employees", h.listEmployees)
}

// createEmployee godoc
// @Summary Register an employee
// @Description Creates a staff record with a hashed POS PIN and a role weight for weighted tip splits.
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate employee"
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEmployee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, services.ErrNegativeTipWeight) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// getEmployee godoc
// @Summary Get an employee
// @Tags employees
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employee_id} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	employee, err := h.employeeService.Get(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deactivateEmployee godoc
// @Summary Deactivate an employee
// @Description Marks the employee inactive. Their ledger and history remain intact. Deactivating an already inactive employee is a no-op.
// @Tags employees
// @Produce  json
// @Param   employee_id path string true "Employee ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employee_id} [delete]
func (h *employeeHandler) deactivateEmployee(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.employeeService.Deactivate(c.Request.Context(), c.Param("employee_id"), actorID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listEmployees godoc
// @Summary List a location's employees
// @Tags employees
// @Produce  json
// @Param   location_id path string true "Location ID"
// @Param   activeOnly query bool false "Only active employees"
// @Success 200 {array} dto.EmployeeResponse
// @Security BearerAuth
// @Router /locations/{location_id}/employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"

	employees, err := h.employeeService.List(c.Request.Context(), c.Param("location_id"), activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = dto.ToEmployeeResponse(&employees[i])
	}
	c.JSON(http.StatusOK, out)
}
