package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booklending/internal/auth"
	"github.com/mrlokans/booklending/internal/config"
	"github.com/mrlokans/booklending/internal/lending"
)

type NotificationsController struct {
	store      NotificationStore
	pagination config.Pagination
}

func NewNotificationsController(store NotificationStore, pagination config.Pagination) *NotificationsController {
	return &NotificationsController{
		store:      store,
		pagination: pagination,
	}
}

type notificationPage struct {
	Response
	UnreadCount int64 `json:"unreadCount"`
}

// List returns the caller's inbox, newest first.
func (controller *NotificationsController) List(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	unreadOnly := false
	if raw := c.Query("unread"); raw != "" {
		var err error
		if unreadOnly, err = strconv.ParseBool(raw); err != nil {
			respondBadRequest(c, "invalid unread")
			return
		}
	}

	ctx := c.Request.Context()
	userID := auth.GetUserID(c)
	page = page.Normalize(controller.pagination.DefaultLimit, controller.pagination.MaxLimit)

	items, total, err := controller.store.ListForUser(ctx, userID, unreadOnly, page.Limit, page.Offset())
	if err != nil {
		respondError(c, err)
		return
	}
	unread, err := controller.store.CountUnread(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	meta := lending.NewPageMeta(page, total)
	c.JSON(http.StatusOK, notificationPage{
		Response:    Response{Success: true, Data: items, Meta: &meta},
		UnreadCount: unread,
	})
}

func (controller *NotificationsController) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.MarkRead(c.Request.Context(), auth.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id}, "Notification marked as read")
}

func (controller *NotificationsController) MarkAllRead(c *gin.Context) {
	updated, err := controller.store.MarkAllRead(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"updated": updated}, "All notifications marked as read")
}
