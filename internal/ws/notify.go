package ws

import (
	"encoding/json"

	"job-board/internal/notification"
)

type jobPostedMessage struct {
	notification.Event
	Message string `json:"message"`
}

// Notify broadcasts evt to every connected client as JSON.
func (h *Hub) Notify(evt notification.Event) {
	if h == nil {
		return
	}
	b, err := json.Marshal(jobPostedMessage{Event: evt, Message: evt.Message()})
	if err != nil {
		h.logger.WithError(err).Warn("[WS] failed to encode event")
		return
	}
	h.Broadcast(b)
}
