package store

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"tracker78-backend/internal/contact"

	"github.com/google/uuid"
)

// Default sampling base (central Accra) and radius in degrees
const (
	DefaultBaseLat = 5.6037
	DefaultBaseLng = -0.1870
	DefaultRadius  = 0.02
)

// ErrDuplicateContact is returned when a friend with the same contact
// string is already tracked.
var ErrDuplicateContact = errors.New("contact already tracked")

// Friend is a locally tracked contact
type Friend struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Contact   string  `json:"contact"`
	Online    bool    `json:"online"`
	LastSeen  string  `json:"last_seen,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PendingRequest is a locally tracked outbound request
type PendingRequest struct {
	ID          string    `json:"id"`
	Contact     string    `json:"contact"`
	ContactType string    `json:"contact_type"`
	SentAt      time.Time `json:"sent_at"`
	Status      string    `json:"status"`
}

// Mirror keeps the friends and pending-request lists in memory, writing
// through to the store on every change. Hydrated from the store once at
// construction.
type Mirror struct {
	store    *Store
	friends  []Friend
	requests []PendingRequest
}

// NewMirror hydrates a mirror from the given store
func NewMirror(s *Store) (*Mirror, error) {
	m := &Mirror{store: s}
	if _, err := s.Get(keyFriends, &m.friends); err != nil {
		return nil, err
	}
	if _, err := s.Get(keyPendingRequests, &m.requests); err != nil {
		return nil, err
	}
	return m, nil
}

// Friends returns a copy of the tracked friends list
func (m *Mirror) Friends() []Friend {
	out := make([]Friend, len(m.friends))
	copy(out, m.friends)
	return out
}

// AddFriend adds a friend, sampling coordinates near the default base when
// none are supplied. Fails with ErrDuplicateContact when the contact is
// already tracked; the list is unchanged in that case.
func (m *Mirror) AddFriend(f Friend) (*Friend, error) {
	return m.AddFriendNear(f, DefaultBaseLat, DefaultBaseLng)
}

// AddFriendNear is AddFriend with an explicit base point for coordinate
// sampling.
func (m *Mirror) AddFriendNear(f Friend, baseLat, baseLng float64) (*Friend, error) {
	for _, existing := range m.friends {
		if existing.Contact == f.Contact {
			return nil, ErrDuplicateContact
		}
	}

	f.ID = uuid.New().String()
	if f.Latitude == 0 && f.Longitude == 0 {
		f.Latitude, f.Longitude = NearbyCoords(baseLat, baseLng, DefaultRadius)
	}

	m.friends = append(m.friends, f)
	if err := m.store.Set(keyFriends, m.friends); err != nil {
		m.friends = m.friends[:len(m.friends)-1]
		return nil, err
	}
	return &f, nil
}

// RemoveFriend drops a friend by id. Removing an unknown id is a no-op.
func (m *Mirror) RemoveFriend(id string) error {
	kept := m.friends[:0]
	removed := false
	for _, f := range m.friends {
		if f.ID == id {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		return nil
	}
	m.friends = kept
	return m.store.Set(keyFriends, m.friends)
}

// UpdateFriendLocation replaces the coordinates of the matching friend.
// Unknown ids are a no-op.
func (m *Mirror) UpdateFriendLocation(id string, lat, lng float64) error {
	for i := range m.friends {
		if m.friends[i].ID == id {
			m.friends[i].Latitude = lat
			m.friends[i].Longitude = lng
			return m.store.Set(keyFriends, m.friends)
		}
	}
	return nil
}

// PendingRequests returns a copy of the locally tracked requests
func (m *Mirror) PendingRequests() []PendingRequest {
	out := make([]PendingRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// AddPendingRequest records an outbound request, classifying the contact
// as email or phone.
func (m *Mirror) AddPendingRequest(contactStr string) (*PendingRequest, error) {
	req := PendingRequest{
		ID:          uuid.New().String(),
		Contact:     contactStr,
		ContactType: contact.Classify(contactStr),
		SentAt:      time.Now(),
		Status:      "pending",
	}
	m.requests = append(m.requests, req)
	if err := m.store.Set(keyPendingRequests, m.requests); err != nil {
		m.requests = m.requests[:len(m.requests)-1]
		return nil, err
	}
	return &req, nil
}

// RemovePendingRequest drops a request by id, typically after it was
// accepted or rejected. Unknown ids are a no-op.
func (m *Mirror) RemovePendingRequest(id string) error {
	kept := m.requests[:0]
	removed := false
	for _, r := range m.requests {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return nil
	}
	m.requests = kept
	return m.store.Set(keyPendingRequests, m.requests)
}

// UseRemoteData reports the "use remote data" preference, false by default
func (m *Mirror) UseRemoteData() bool {
	var v bool
	ok, err := m.store.Get(keyUseRemoteData, &v)
	if err != nil || !ok {
		return false
	}
	return v
}

// SetUseRemoteData persists the "use remote data" preference
func (m *Mirror) SetUseRemoteData(v bool) error {
	return m.store.Set(keyUseRemoteData, v)
}

// NearbyCoords samples a point uniformly by area from the disk of the
// given radius around the base. The sqrt keeps samples from clustering at
// the center.
func NearbyCoords(baseLat, baseLng, radius float64) (lat, lng float64) {
	r := radius * math.Sqrt(rand.Float64())
	theta := rand.Float64() * 2 * math.Pi
	return baseLat + r*math.Cos(theta), baseLng + r*math.Sin(theta)
}
