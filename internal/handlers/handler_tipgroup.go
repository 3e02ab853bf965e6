package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/GetwithitMan/gwi-pos-sub009/internal/core/ports/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/core/services"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/dto"
	"github.com/GetwithitMan/gwi-pos-sub009/internal/middleware"
)

// tipGroupHandler handles tip group lifecycle requests.
type tipGroupHandler struct {
	tipGroupService portssvc.TipGroupSvcFacade
}

func newTipGroupHandler(ts portssvc.TipGroupSvcFacade) *tipGroupHandler {
	return &tipGroupHandler{tipGroupService: ts}
}

// registerTipGroupRoutes registers tip group lifecycle routes.
func registerTipGroupRoutes(rg *gin.RouterGroup, tipGroupService portssvc.TipGroupSvcFacade) {
	h := newTipGroupHandler(tipGroupService)

	groups := rg.Group("/tip-groups")
	{
		groups.POST("", h.startGroup)
		groups.GET("/:group_id", h.getGroup)
		groups.POST("/:group_id/members", h.addMember)
		groups.DELETE("/:group_id/members/:employee_id", h.removeMember)
		groups.POST("/:group_id/join-requests", h.requestJoin)
		groups.POST("/:group_id/join-requests/:employee_id/approve", h.approveJoin)
		groups.POST("/:group_id/close", h.closeGroup)
		groups.GET("/:group_id/segment", h.segmentAt)
	}
	rg.GET("/locations/:location_id/tip-groups", h.listGroups)
}

// isGroupRuleViolation reports whether err is a tip group business rule error.
func isGroupRuleViolation(err error) bool {
	return errors.Is(err, services.ErrGroupNotActive) ||
		errors.Is(err, services.ErrAlreadyMember) ||
		errors.Is(err, services.ErrNotMember) ||
		errors.Is(err, services.ErrNoPendingRequest) ||
		errors.Is(err, services.ErrAlreadyInGroup) ||
		errors.Is(err, services.ErrNoInitialMembers) ||
		errors.Is(err, services.ErrEmployeeInactive) ||
		errors.Is(err, services.ErrDuplicateMemberID)
}

// startGroup godoc
// @Summary Start a tip group
// @Description Creates a group with its initial members and opens the first segment.
// @Tags tip-groups
// @Accept  json
// @Produce  json
// @Param   group body dto.StartGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /tip-groups [post]
func (h *tipGroupHandler) startGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StartGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StartGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tipGroupService.Start(c.Request.Context(), req, actorID)
	if err != nil {
		if isGroupRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// getGroup godoc
// @Summary Get a tip group
// @Description Retrieves a group and, when active, its open segment.
// @Tags tip-groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} map[string]string "Group not found"
// @Security BearerAuth
// @Router /tip-groups/{group_id} [get]
func (h *tipGroupHandler) getGroup(c *gin.Context) {
	resp, err := h.tipGroupService.GetGroup(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listGroups godoc
// @Summary List a location's tip groups
// @Produce  json
// @Param   location_id path string true "Location ID"
// @Param   activeOnly query bool false "Only active groups"
// @Success 200 {array} dto.GroupResponse
// @Security BearerAuth
// @Router /locations/{location_id}/tip-groups [get]
func (h *tipGroupHandler) listGroups(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"
	resp, err := h.tipGroupService.ListGroups(c.Request.Context(), c.Param("location_id"), activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// addMember godoc
// @Summary Add a member to an active tip group
// @Description Adds the employee immediately, closing the open segment and opening a new one with recomputed splits.
// @Tags tip-groups
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   member body dto.AddMemberRequest true "Employee to add"
// @Success 200 {object} dto.GroupResponse
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /tip-groups/{group_id}/members [post]
func (h *tipGroupHandler) addMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tipGroupService.AddMember(c.Request.Context(), c.Param("group_id"), req.EmployeeID, actorID)
	if err != nil {
		if isGroupRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// removeMember godoc
// @Summary Remove a member from a tip group
// @Description Removes the employee, rotating the open segment. Removing the last member closes the group.
// @Tags tip-groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /tip-groups/{group_id}/members/{employee_id} [delete]
func (h *tipGroupHandler) removeMember(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tipGroupService.RemoveMember(c.Request.Context(), c.Param("group_id"), c.Param("employee_id"), actorID)
	if err != nil {
		if isGroupRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// requestJoin godoc
// @Summary Request to join a tip group
// @Description Records a pending membership that carries no split weight until approved.
// @Tags tip-groups
// @Accept  json
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   request body dto.RequestJoinRequest true "Joining employee"
// @Success 202 {object} map[string]string
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /tip-groups/{group_id}/join-requests [post]
func (h *tipGroupHandler) requestJoin(c *gin.Context) {
	var req dto.RequestJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.tipGroupService.RequestJoin(c.Request.Context(), c.Param("group_id"), req.EmployeeID); err != nil {
		if isGroupRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "pending_approval"})
}

// approveJoin godoc
// @Summary Approve a pending join request
// @Description Promotes the pending membership to active and rotates the open segment.
// @Tags tip-groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   employee_id path string true "Employee ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /tip-groups/{group_id}/join-requests/{employee_id}/approve [post]
func (h *tipGroupHandler) approveJoin(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tipGroupService.ApproveJoin(c.Request.Context(), c.Param("group_id"), c.Param("employee_id"), actorID)
	if err != nil {
		if isGroupRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// closeGroup godoc
// @Summary Close a tip group
// @Description Ends all memberships and the open segment. Closed groups keep their history for timestamped lookups.
// @Tags tip-groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Success 200 {object} map[string]string
// @Failure 422 {object} map[string]string "Business rule violation"
// @Security BearerAuth
// @Router /tip-groups/{group_id}/close [post]
func (h *tipGroupHandler) closeGroup(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.tipGroupService.Close(c.Request.Context(), c.Param("group_id"), actorID); err != nil {
		if isGroupRuleViolation(err) {
			respondBusinessError(c, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "closed"})
}

// segmentAt godoc
// @Summary Find the segment covering a timestamp
// @Description Reconstructs the historically accurate split for a tip collected at the given instant, independent of current membership.
// @Tags tip-groups
// @Produce  json
// @Param   group_id path string true "Group ID"
// @Param   at query string true "RFC3339 timestamp"
// @Success 200 {object} dto.SegmentResponse
// @Failure 404 {object} map[string]string "No segment covers the timestamp"
// @Security BearerAuth
// @Router /tip-groups/{group_id}/segment [get]
func (h *tipGroupHandler) segmentAt(c *gin.Context) {
	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'at' timestamp: " + err.Error()})
		return
	}

	segment, err := h.tipGroupService.FindSegmentForTimestamp(c.Request.Context(), c.Param("group_id"), at)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSegmentResponse(segment))
}
