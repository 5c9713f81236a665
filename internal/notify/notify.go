package notify

import (
	"sync"
	"time"
)

// Kind tags a notification for the render collaborator.
type Kind string

const (
	KindAchievementUnlocked Kind = "achievement_unlocked"
	KindEventOffered        Kind = "event_offered"
	KindEventStarted        Kind = "event_started"
	KindEventEnded          Kind = "event_ended"
	KindWelcomeBack         Kind = "welcome_back"
	KindStaffWorked         Kind = "staff_worked"
	KindActionFeedback      Kind = "action_feedback"
	KindSaved               Kind = "saved"
)

type Notification struct {
	ID        int            `json:"id"`
	Kind      Kind           `json:"kind"`
	Timestamp time.Time      `json:"timestamp"`
	Title     string         `json:"title,omitempty"`
	Body      string         `json:"body,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Notifier is the outbound side. Implementations must never block the tick;
// a nil Notifier is valid and drops everything.
type Notifier interface {
	Publish(kind Kind, title, body string, fields map[string]any)
}

// Publish on a nil-safe wrapper.
func Publish(n Notifier, kind Kind, title, body string, fields map[string]any) {
	if n == nil {
		return
	}
	n.Publish(kind, title, body, fields)
}

// MemorySink buffers the most recent notifications for the polling render
// surface. Reads drain from a cursor so each client sees every item once.
type MemorySink struct {
	mu     sync.Mutex
	items  []Notification
	nextID int
	limit  int
}

func NewMemorySink(limit int) *MemorySink {
	if limit <= 0 {
		limit = 256
	}
	return &MemorySink{nextID: 1, limit: limit}
}

func (s *MemorySink) Publish(kind Kind, title, body string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, Notification{
		ID:        s.nextID,
		Kind:      kind,
		Timestamp: time.Now(),
		Title:     title,
		Body:      body,
		Fields:    fields,
	})
	s.nextID++
	if len(s.items) > s.limit {
		s.items = s.items[len(s.items)-s.limit:]
	}
}

// Since returns every buffered notification with an ID greater than after.
func (s *MemorySink) Since(after int) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Notification{}
	for _, n := range s.items {
		if n.ID > after {
			out = append(out, n)
		}
	}
	return out
}

func (s *MemorySink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
