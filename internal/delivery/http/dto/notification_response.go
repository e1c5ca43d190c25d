package dto

import (
	"time"

	"job-board/internal/notification"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Seq       int       `json:"seq"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	JobID     uuid.UUID `json:"job_id"`
	Timestamp string    `json:"timestamp"`
}

type NotificationListResponse struct {
	Unread int                    `json:"unread"`
	Items  []NotificationResponse `json:"items"`
}

func NewNotificationListResponse(msgs []notification.Message) NotificationListResponse {
	items := make([]NotificationResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, NotificationResponse{
			Seq:       m.Seq,
			Message:   m.Text,
			Type:      m.Event.Type,
			JobID:     m.Event.JobID,
			Timestamp: m.Event.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return NotificationListResponse{Unread: len(items), Items: items}
}
