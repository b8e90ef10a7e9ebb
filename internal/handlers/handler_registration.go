package handlers

import (
	"log/slog"
	"net/http"

	"github.com/grschool/sms_backend/internal/dto"
	"github.com/grschool/sms_backend/internal/middleware"
	"github.com/gin-gonic/gin"

	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
)

// registrationHandler handles member registration and the student directory.
type registrationHandler struct {
	registrationService portssvc.RegistrationSvcFacade
}

func newRegistrationHandler(registrationService portssvc.RegistrationSvcFacade) *registrationHandler {
	return &registrationHandler{registrationService: registrationService}
}

// registerRegistrationRoutes registers registration and student directory routes.
func registerRegistrationRoutes(group *gin.RouterGroup, registrationService portssvc.RegistrationSvcFacade) {
	h := newRegistrationHandler(registrationService)

	registrations := group.Group("/registrations")
	{
		registrations.POST("/students", h.registerStudent)
		registrations.POST("/teachers", h.registerTeacher)
		registrations.POST("/staff", h.registerStaff)
	}

	students := group.Group("/students")
	{
		students.GET("", h.listStudents)
		students.GET("/:studentID", h.getStudent)
	}
}

// registerStudent godoc
// @Summary Register a student
// @Description Creates the login identity, the student profile, the display ID and the current-year fee account. Admin only.
// @Tags registrations
// @Accept json
// @Produce json
// @Param student body dto.RegisterStudentRequest true "Student details"
// @Success 201 {object} dto.RegistrationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Phone number already registered"
// @Security BearerAuth
// @Router /registrations/students [post]
func (h *registrationHandler) registerStudent(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.registrationService.RegisterStudent(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to register student")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Student registered", slog.String("display_id", result.DisplayID))
	c.JSON(http.StatusCreated, toRegistrationResponse(result))
}

// registerTeacher godoc
// @Summary Register a teacher
// @Tags registrations
// @Accept json
// @Produce json
// @Param teacher body dto.RegisterTeacherRequest true "Teacher details"
// @Success 201 {object} dto.RegistrationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /registrations/teachers [post]
func (h *registrationHandler) registerTeacher(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.RegisterTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.registrationService.RegisterTeacher(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to register teacher")
		return
	}
	c.JSON(http.StatusCreated, toRegistrationResponse(result))
}

// registerStaff godoc
// @Summary Register a staff member
// @Description Creates a bursar, admin or general staff account. Admin only.
// @Tags registrations
// @Accept json
// @Produce json
// @Param staff body dto.RegisterStaffRequest true "Staff details"
// @Success 201 {object} dto.RegistrationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /registrations/staff [post]
func (h *registrationHandler) registerStaff(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.registrationService.RegisterStaff(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to register staff member")
		return
	}
	c.JSON(http.StatusCreated, toRegistrationResponse(result))
}

// getStudent godoc
// @Summary Get a student profile
// @Description Students may only read their own profile.
// @Tags students
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /students/{studentID} [get]
func (h *registrationHandler) getStudent(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	student, err := h.registrationService.GetStudent(c.Request.Context(), actor, c.Param("studentID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve student")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponse(student))
}

// listStudents godoc
// @Summary List students
// @Description Lists students filtered by form and/or class. Staff only.
// @Tags students
// @Produce json
// @Param form query string false "Form"
// @Param class query string false "Class"
// @Success 200 {array} dto.StudentResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /students [get]
func (h *registrationHandler) listStudents(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var params dto.ListStudentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	students, err := h.registrationService.ListStudents(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list students")
		return
	}
	c.JSON(http.StatusOK, dto.ToStudentResponses(students))
}

func toRegistrationResponse(result *portssvc.RegistrationResult) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		UserID:    result.UserID,
		ProfileID: result.ProfileID,
		DisplayID: result.DisplayID,
		Role:      string(result.Role),
	}
}
