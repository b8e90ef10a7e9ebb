package handlers

import (
	"net/http"

	"github.com/grschool/sms_backend/internal/dto"
	"github.com/gin-gonic/gin"

	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
)

// activityHandler handles school event requests.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

func newActivityHandler(activityService portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: activityService}
}

// registerActivityRoutes registers activity specific routes.
func registerActivityRoutes(group *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)

	activities := group.Group("/activities")
	{
		activities.POST("", h.createActivity)
		activities.GET("", h.listActivities)
		activities.GET("/:activityID", h.getActivity)
		activities.PUT("/:activityID", h.updateActivity)
		activities.DELETE("/:activityID", h.deleteActivity)
		activities.POST("/:activityID/approve", h.approveActivity)
	}
}

// createActivity godoc
// @Summary Schedule a school event
// @Description Teacher-created activities start unapproved; admin-created ones are approved immediately.
// @Tags activities
// @Accept json
// @Produce json
// @Param activity body dto.CreateActivityRequest true "Activity details"
// @Success 201 {object} dto.ActivityResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities [post]
func (h *activityHandler) createActivity(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	activity, err := h.activityService.CreateActivity(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create activity")
		return
	}
	c.JSON(http.StatusCreated, dto.ToActivityResponse(activity))
}

// listActivities godoc
// @Summary List school events
// @Description Students only see approved events. Set upcoming=true to filter out past events.
// @Tags activities
// @Produce json
// @Param form query string false "Form"
// @Param upcoming query bool false "Only events that have not ended"
// @Success 200 {array} dto.ActivityResponse
// @Security BearerAuth
// @Router /activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	activities, err := h.activityService.ListActivities(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list activities")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponses(activities))
}

func (h *activityHandler) getActivity(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	activity, err := h.activityService.GetActivity(c.Request.Context(), actor, c.Param("activityID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

func (h *activityHandler) updateActivity(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	activity, err := h.activityService.UpdateActivity(c.Request.Context(), actor, c.Param("activityID"), req)
	if err != nil {
		respondError(c, err, "Failed to update activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}

func (h *activityHandler) deleteActivity(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	if err := h.activityService.DeleteActivity(c.Request.Context(), actor, c.Param("activityID")); err != nil {
		respondError(c, err, "Failed to delete activity")
		return
	}
	c.Status(http.StatusNoContent)
}

// approveActivity godoc
// @Summary Approve a pending event
// @Description Makes a pending event visible to students. Approving twice is a no-op. Admin only.
// @Tags activities
// @Produce json
// @Param activityID path string true "Activity ID"
// @Success 200 {object} dto.ActivityResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /activities/{activityID}/approve [post]
func (h *activityHandler) approveActivity(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	activity, err := h.activityService.ApproveActivity(c.Request.Context(), actor, c.Param("activityID"))
	if err != nil {
		respondError(c, err, "Failed to approve activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(activity))
}
