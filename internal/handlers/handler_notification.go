package handlers

import (
	"net/http"

	"github.com/grschool/sms_backend/internal/dto"
	"github.com/gin-gonic/gin"

	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
)

// notificationHandler handles the per-user notification feed.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(notificationService portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

// registerNotificationRoutes registers notification specific routes.
func registerNotificationRoutes(group *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := group.Group("/notifications")
	{
		notifications.POST("", h.sendNotification)
		notifications.GET("", h.listNotifications)
		notifications.GET("/unread-count", h.countUnread)
		notifications.POST("/:notificationID/read", h.markRead)
	}
}

// sendNotification godoc
// @Summary Send a notification
// @Description Stores a notification per recipient and fires a best-effort push. Staff only.
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body dto.SendNotificationRequest true "Notification details"
// @Success 201 {object} map[string]int "Number of notifications delivered"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [post]
func (h *notificationHandler) sendNotification(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	sent, err := h.notificationService.Send(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to send notifications")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sent": sent})
}

// listNotifications godoc
// @Summary List own notifications
// @Description Lists the caller's unexpired notifications, newest first.
// @Tags notifications
// @Produce json
// @Success 200 {array} dto.NotificationResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	notifications, err := h.notificationService.ListMine(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

// countUnread godoc
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (h *notificationHandler) countUnread(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to count notifications")
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// markRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Param notificationID path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{notificationID}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), actor, c.Param("notificationID")); err != nil {
		respondError(c, err, "Failed to mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}
