package handler

import (
	"context"

	notificationapp "github.com/erp/feeengine/internal/application/notification"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InboxService lists and acknowledges the caller's notifications
type InboxService interface {
	List(ctx context.Context, actor shared.Actor, page, pageSize int) ([]notificationapp.NotificationResponse, error)
	MarkRead(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

// NotificationHandler handles the notification inbox
type NotificationHandler struct {
	BaseHandler
	inbox InboxService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(inbox InboxService) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

type inboxQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List godoc
// @ID           listNotifications
// @Summary      List my notifications
// @Description  Returns the caller's notifications, newest first
// @Tags         notifications
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]notificationapp.NotificationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var q inboxQuery
	if !h.bindQuery(c, &q) {
		return
	}
	p := dto.NewPagination(q.Page, q.PageSize)
	items, err := h.inbox.List(c.Request.Context(), actor, p.Page, p.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// MarkRead godoc
// @ID           markNotificationRead
// @Summary      Mark a notification read
// @Description  Acknowledges one notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        id path string true "Notification ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.inbox.MarkRead(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
