package handlers

import (
	"net/http"

	"github.com/grschool/sms_backend/internal/dto"
	"github.com/gin-gonic/gin"

	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
)

// assignmentHandler handles assignment and submission requests.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func newAssignmentHandler(assignmentService portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{assignmentService: assignmentService}
}

// registerAssignmentRoutes registers assignment specific routes.
func registerAssignmentRoutes(group *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(assignmentService)

	assignments := group.Group("/assignments")
	{
		assignments.POST("", h.createAssignment)
		assignments.GET("", h.listAssignments)
		assignments.GET("/:assignmentID", h.getAssignment)
		assignments.PUT("/:assignmentID", h.updateAssignment)
		assignments.DELETE("/:assignmentID", h.deleteAssignment)
		assignments.POST("/:assignmentID/submissions", h.submitAssignment)
		assignments.GET("/:assignmentID/submissions", h.listSubmissions)
	}
}

// createAssignment godoc
// @Summary Publish an assignment
// @Description Publishes an assignment to a form/class. Teacher/admin only.
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body dto.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /assignments [post]
func (h *assignmentHandler) createAssignment(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create assignment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssignmentResponse(assignment))
}

// listAssignments godoc
// @Summary List assignments
// @Description Lists assignments matching the filter. Students are pinned to their own form.
// @Tags assignments
// @Produce json
// @Param form query string false "Form"
// @Param class query string false "Class"
// @Param subject query string false "Subject"
// @Success 200 {array} dto.AssignmentResponse
// @Security BearerAuth
// @Router /assignments [get]
func (h *assignmentHandler) listAssignments(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var params dto.ListAssignmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponses(assignments))
}

func (h *assignmentHandler) getAssignment(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetAssignment(c.Request.Context(), actor, c.Param("assignmentID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve assignment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

// updateAssignment godoc
// @Summary Update an assignment
// @Description Only the publishing teacher or an admin may update it.
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Param assignment body dto.UpdateAssignmentRequest true "Fields to update"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /assignments/{assignmentID} [put]
func (h *assignmentHandler) updateAssignment(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	assignment, err := h.assignmentService.UpdateAssignment(c.Request.Context(), actor, c.Param("assignmentID"), req)
	if err != nil {
		respondError(c, err, "Failed to update assignment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentResponse(assignment))
}

func (h *assignmentHandler) deleteAssignment(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), actor, c.Param("assignmentID")); err != nil {
		respondError(c, err, "Failed to delete assignment")
		return
	}
	c.Status(http.StatusNoContent)
}

// submitAssignment godoc
// @Summary Submit an assignment answer
// @Description Records the student's submission, replacing any earlier one for the same assignment.
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Param submission body dto.SubmitAssignmentRequest true "Submission content"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /assignments/{assignmentID}/submissions [post]
func (h *assignmentHandler) submitAssignment(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	submission, err := h.assignmentService.SubmitAssignment(c.Request.Context(), actor, c.Param("assignmentID"), req)
	if err != nil {
		respondError(c, err, "Failed to submit assignment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubmissionResponse(submission))
}

// listSubmissions godoc
// @Summary List submissions for an assignment
// @Description Only the publishing teacher or an admin may read them.
// @Tags assignments
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /assignments/{assignmentID}/submissions [get]
func (h *assignmentHandler) listSubmissions(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	submissions, err := h.assignmentService.ListSubmissions(c.Request.Context(), actor, c.Param("assignmentID"))
	if err != nil {
		respondError(c, err, "Failed to list submissions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionResponses(submissions))
}
