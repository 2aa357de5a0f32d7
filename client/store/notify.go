package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// At most this many notifications are kept, newest first
const maxNotifications = 5

// DefaultNotificationTTL is how long a notification lives before expiring
const DefaultNotificationTTL = 5 * time.Second

// Notification is a transient in-app message
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationCenter holds the most recent notifications. Each entry
// expires on its own after the configured TTL.
type NotificationCenter struct {
	ttl   time.Duration
	store *Store

	mu    sync.Mutex
	items []Notification
}

// NewNotificationCenter creates a center with the given TTL; zero means
// DefaultNotificationTTL.
func NewNotificationCenter(ttl time.Duration) *NotificationCenter {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &NotificationCenter{ttl: ttl}
}

// NewPersistedNotificationCenter additionally writes the list through to
// the store so it survives restarts.
func NewPersistedNotificationCenter(s *Store, ttl time.Duration) *NotificationCenter {
	nc := NewNotificationCenter(ttl)
	nc.store = s
	if s != nil {
		_, _ = s.Get(keyNotifications, &nc.items)
	}
	return nc
}

// Push adds a notification and schedules its expiry. The list is trimmed
// to the most recent entries.
func (nc *NotificationCenter) Push(message, severity string) Notification {
	n := Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now(),
	}

	nc.mu.Lock()
	nc.items = append([]Notification{n}, nc.items...)
	if len(nc.items) > maxNotifications {
		nc.items = nc.items[:maxNotifications]
	}
	nc.persistLocked()
	nc.mu.Unlock()

	time.AfterFunc(nc.ttl, func() {
		nc.remove(n.ID)
	})
	return n
}

// Notifications returns the live notifications, newest first
func (nc *NotificationCenter) Notifications() []Notification {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	out := make([]Notification, len(nc.items))
	copy(out, nc.items)
	return out
}

// Dismiss removes a notification before its expiry
func (nc *NotificationCenter) Dismiss(id string) {
	nc.remove(id)
}

func (nc *NotificationCenter) remove(id string) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	for i, n := range nc.items {
		if n.ID == id {
			nc.items = append(nc.items[:i], nc.items[i+1:]...)
			nc.persistLocked()
			return
		}
	}
}

// persistLocked mirrors the list to the store when one is attached.
// Caller holds nc.mu.
func (nc *NotificationCenter) persistLocked() {
	if nc.store == nil {
		return
	}
	_ = nc.store.Set(keyNotifications, nc.items)
}
