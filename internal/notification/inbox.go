package notification

import "sync"

type Message struct {
	Seq  int    `json:"seq"`
	Text string `json:"text"`
	Event
}

// Inbox keeps every published event in one shared feed and a read cursor per
// user, so each user sees what arrived since they last marked it read.
type Inbox struct {
	mu      sync.RWMutex
	feed    []Message
	cursors map[string]int
	limit   int
}

func NewInbox(limit int) *Inbox {
	if limit <= 0 {
		limit = 500
	}
	return &Inbox{cursors: make(map[string]int), limit: limit}
}

func (in *Inbox) Notify(evt Event) {
	in.mu.Lock()
	defer in.mu.Unlock()

	seq := 1
	if n := len(in.feed); n > 0 {
		seq = in.feed[n-1].Seq + 1
	}
	in.feed = append(in.feed, Message{Seq: seq, Text: evt.Message(), Event: evt})
	if len(in.feed) > in.limit {
		in.feed = append([]Message(nil), in.feed[len(in.feed)-in.limit:]...)
	}
}

// Unread returns the messages newer than the user's cursor, oldest first.
func (in *Inbox) Unread(username string) []Message {
	in.mu.RLock()
	defer in.mu.RUnlock()

	cursor := in.cursors[username]
	out := make([]Message, 0)
	for _, m := range in.feed {
		if m.Seq > cursor {
			out = append(out, m)
		}
	}
	return out
}

func (in *Inbox) UnreadCount(username string) int {
	return len(in.Unread(username))
}

func (in *Inbox) MarkRead(username string) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if n := len(in.feed); n > 0 {
		in.cursors[username] = in.feed[n-1].Seq
	}
}
