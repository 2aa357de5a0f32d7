package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationCenter_NewestFirstAndCapped(t *testing.T) {
	nc := NewNotificationCenter(time.Minute)

	for i := 0; i < 7; i++ {
		nc.Push(fmt.Sprintf("message %d", i), "info")
	}

	items := nc.Notifications()
	require.Len(t, items, maxNotifications)
	assert.Equal(t, "message 6", items[0].Message)
	assert.Equal(t, "message 2", items[len(items)-1].Message)
}

func TestNotificationCenter_Expiry(t *testing.T) {
	nc := NewNotificationCenter(20 * time.Millisecond)

	nc.Push("ephemeral", "warning")
	require.Len(t, nc.Notifications(), 1)

	assert.Eventually(t, func() bool {
		return len(nc.Notifications()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationCenter_Dismiss(t *testing.T) {
	nc := NewNotificationCenter(time.Minute)

	n := nc.Push("dismiss me", "info")
	nc.Push("keep me", "info")

	nc.Dismiss(n.ID)

	items := nc.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, "keep me", items[0].Message)
}

func TestPersistedNotificationCenter_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.json")

	s, err := Open(path)
	require.NoError(t, err)
	nc := NewPersistedNotificationCenter(s, time.Minute)
	nc.Push("persisted", "info")

	s2, err := Open(path)
	require.NoError(t, err)
	nc2 := NewPersistedNotificationCenter(s2, time.Minute)

	items := nc2.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, "persisted", items[0].Message)
}
