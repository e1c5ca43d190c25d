package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const EventJobPosted = "job_posted"

type Event struct {
	Type            string    `json:"type"`
	JobID           uuid.UUID `json:"job_id"`
	Title           string    `json:"title"`
	CompanyUsername string    `json:"company_username"`
	Timestamp       time.Time `json:"timestamp"`
}

func (e Event) Message() string {
	switch e.Type {
	case EventJobPosted:
		return fmt.Sprintf("New Job Posted: %s by %s", e.Title, e.CompanyUsername)
	default:
		return e.Type
	}
}

type Observer interface {
	Notify(evt Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(evt Event)

func (f ObserverFunc) Notify(evt Event) { f(evt) }

// Service fans events out to its observers synchronously, in subscription
// order.
type Service struct {
	mu        sync.RWMutex
	nextID    int
	observers []subscription
}

type subscription struct {
	id int
	o  Observer
}

func NewService() *Service {
	return &Service{}
}

// Subscribe registers o and returns the function that removes it again.
func (s *Service) Subscribe(o Observer) (unsubscribe func()) {
	if s == nil || o == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, o: o})

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Service) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.observers {
		if sub.id == id {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Service) Publish(evt Event) {
	if s == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	s.mu.RLock()
	snapshot := append([]subscription(nil), s.observers...)
	s.mu.RUnlock()

	for _, sub := range snapshot {
		sub.o.Notify(evt)
	}
}
