package store

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMirror(t *testing.T) *Mirror {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tracker.json"))
	require.NoError(t, err)
	m, err := NewMirror(s)
	require.NoError(t, err)
	return m
}

func TestAddFriend_GeneratesIDAndCoords(t *testing.T) {
	m := newTestMirror(t)

	friend, err := m.AddFriendNear(Friend{Name: "Kofi", Contact: "kofi@example.com"}, 5.60, -0.18)
	require.NoError(t, err)
	require.NotNil(t, friend)

	assert.NotEmpty(t, friend.ID)
	assert.Len(t, m.Friends(), 1)

	dLat := friend.Latitude - 5.60
	dLng := friend.Longitude + 0.18
	dist := math.Sqrt(dLat*dLat + dLng*dLng)
	assert.LessOrEqual(t, dist, DefaultRadius)
}

func TestAddFriend_RejectsDuplicateContact(t *testing.T) {
	m := newTestMirror(t)

	_, err := m.AddFriend(Friend{Name: "Ama", Contact: "ama@example.com"})
	require.NoError(t, err)

	dup, err := m.AddFriend(Friend{Name: "Ama Again", Contact: "ama@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateContact)
	assert.Nil(t, dup)
	assert.Len(t, m.Friends(), 1)
}

func TestAddFriend_KeepsSuppliedCoords(t *testing.T) {
	m := newTestMirror(t)

	friend, err := m.AddFriend(Friend{Name: "Yaw", Contact: "yaw@example.com", Latitude: 51.5, Longitude: -0.12})
	require.NoError(t, err)

	assert.Equal(t, 51.5, friend.Latitude)
	assert.Equal(t, -0.12, friend.Longitude)
}

func TestRemoveFriend_UnknownIDIsNoop(t *testing.T) {
	m := newTestMirror(t)

	_, err := m.AddFriend(Friend{Name: "Ama", Contact: "ama@example.com"})
	require.NoError(t, err)

	require.NoError(t, m.RemoveFriend("no-such-id"))
	assert.Len(t, m.Friends(), 1)
}

func TestRemoveFriend_DropsEntry(t *testing.T) {
	m := newTestMirror(t)

	friend, err := m.AddFriend(Friend{Name: "Ama", Contact: "ama@example.com"})
	require.NoError(t, err)

	require.NoError(t, m.RemoveFriend(friend.ID))
	assert.Empty(t, m.Friends())
}

func TestUpdateFriendLocation(t *testing.T) {
	m := newTestMirror(t)

	friend, err := m.AddFriend(Friend{Name: "Ama", Contact: "ama@example.com"})
	require.NoError(t, err)

	require.NoError(t, m.UpdateFriendLocation(friend.ID, 6.0, -1.0))

	friends := m.Friends()
	require.Len(t, friends, 1)
	assert.Equal(t, 6.0, friends[0].Latitude)
	assert.Equal(t, -1.0, friends[0].Longitude)
	assert.Equal(t, "Ama", friends[0].Name)
}

func TestMirror_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.json")

	s, err := Open(path)
	require.NoError(t, err)
	m, err := NewMirror(s)
	require.NoError(t, err)

	friend, err := m.AddFriend(Friend{Name: "Kofi", Contact: "kofi@example.com"})
	require.NoError(t, err)
	_, err = m.AddPendingRequest("+233 555 000 111")
	require.NoError(t, err)

	s2, err := Open(path)
	require.NoError(t, err)
	m2, err := NewMirror(s2)
	require.NoError(t, err)

	friends := m2.Friends()
	require.Len(t, friends, 1)
	assert.Equal(t, friend.ID, friends[0].ID)
	assert.Equal(t, "kofi@example.com", friends[0].Contact)

	requests := m2.PendingRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, "phone", requests[0].ContactType)
	assert.Equal(t, "pending", requests[0].Status)
}

func TestPendingRequests_ClassifyAndRemove(t *testing.T) {
	m := newTestMirror(t)

	req, err := m.AddPendingRequest("efua@example.com")
	require.NoError(t, err)
	assert.Equal(t, "email", req.ContactType)

	require.NoError(t, m.RemovePendingRequest(req.ID))
	assert.Empty(t, m.PendingRequests())

	require.NoError(t, m.RemovePendingRequest(req.ID))
}

func TestUseRemoteDataPreference(t *testing.T) {
	m := newTestMirror(t)

	assert.False(t, m.UseRemoteData())
	require.NoError(t, m.SetUseRemoteData(true))
	assert.True(t, m.UseRemoteData())
}

func TestNearbyCoords_WithinRadius(t *testing.T) {
	const radius = 0.02
	for i := 0; i < 1000; i++ {
		lat, lng := NearbyCoords(5.6037, -0.1870, radius)
		dLat := lat - 5.6037
		dLng := lng + 0.1870
		dist := math.Sqrt(dLat*dLat + dLng*dLng)
		assert.LessOrEqual(t, dist, radius)
	}
}

func TestNearbyCoords_UniformByArea(t *testing.T) {
	// The inner disk of radius R/sqrt(2) covers half the area, so about
	// half the samples should land inside it.
	const (
		radius  = 0.02
		samples = 20000
	)
	inner := radius / math.Sqrt2

	count := 0
	for i := 0; i < samples; i++ {
		lat, lng := NearbyCoords(0, 0, radius)
		if math.Sqrt(lat*lat+lng*lng) <= inner {
			count++
		}
	}

	ratio := float64(count) / samples
	assert.InDelta(t, 0.5, ratio, 0.03)
}
