package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/notification"
	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Inbox interface {
	Unread(username string) []notification.Message
	MarkRead(username string)
}

type NotificationsHandler struct {
	inbox Inbox
	auth  fiber.Handler
}

func NewNotificationsHandler(inbox Inbox, auth fiber.Handler) *NotificationsHandler {
	return &NotificationsHandler{inbox: inbox, auth: auth}
}

func (h *NotificationsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.auth, h.HandleUnread)
	r.Post("/read", h.auth, h.HandleMarkRead)
}

func (h *NotificationsHandler) HandleUnread(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNotificationListResponse(h.inbox.Unread(username)))
}

func (h *NotificationsHandler) HandleMarkRead(c fiber.Ctx) error {
	username, err := currentUser(c)
	if err != nil {
		return err
	}
	h.inbox.MarkRead(username)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNotificationListResponse(nil))
}
