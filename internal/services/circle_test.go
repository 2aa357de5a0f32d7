package services

import (
	"context"
	"testing"

	"tracker78-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circleFixtures(t *testing.T) (*CircleService, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &models.User{ID: "creator", Email: "creator@example.com", Name: "Creator"}))
	require.NoError(t, users.Create(ctx, &models.User{ID: "joiner", Email: "joiner@example.com", Name: "Joiner"}))
	return NewCircleService(newFakeCircleStore(), users), users
}

func TestCreateCircle_CreatorIsFirstMember(t *testing.T) {
	ctx := context.Background()
	svc, _ := circleFixtures(t)

	circle, err := svc.CreateCircle(ctx, "creator", "Family", "close ones")
	require.NoError(t, err)
	assert.Len(t, circle.JoinCode, 6)
	assert.Equal(t, "creator", circle.CreatedBy)

	members, err := svc.Members(ctx, circle.ID, "creator")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Creator", members[0].Name)
	assert.Equal(t, "creator@example.com", members[0].Contact)
}

func TestJoinByCode(t *testing.T) {
	ctx := context.Background()
	svc, _ := circleFixtures(t)

	circle, err := svc.CreateCircle(ctx, "creator", "Family", "")
	require.NoError(t, err)

	joined, err := svc.JoinByCode(ctx, "joiner", circle.JoinCode)
	require.NoError(t, err)
	assert.Equal(t, circle.ID, joined.ID)

	members, err := svc.Members(ctx, circle.ID, "joiner")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	// Joining twice is a conflict.
	_, err = svc.JoinByCode(ctx, "joiner", circle.JoinCode)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestJoinByCode_UnknownCode(t *testing.T) {
	ctx := context.Background()
	svc, _ := circleFixtures(t)

	_, err := svc.JoinByCode(ctx, "joiner", "ZZZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.JoinByCode(ctx, "joiner", "short")
	assert.Error(t, err)
}

func TestMembers_AreSnapshots(t *testing.T) {
	ctx := context.Background()
	svc, users := circleFixtures(t)

	circle, err := svc.CreateCircle(ctx, "creator", "Family", "")
	require.NoError(t, err)

	// Renaming the account later must not touch the existing member row.
	users.users["creator"].Name = "Renamed"

	members, err := svc.Members(ctx, circle.ID, "creator")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Creator", members[0].Name)
}

func TestMembers_RequiresMembership(t *testing.T) {
	ctx := context.Background()
	svc, _ := circleFixtures(t)

	circle, err := svc.CreateCircle(ctx, "creator", "Family", "")
	require.NoError(t, err)

	_, err = svc.Members(ctx, circle.ID, "joiner")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestLeave(t *testing.T) {
	ctx := context.Background()
	svc, _ := circleFixtures(t)

	circle, err := svc.CreateCircle(ctx, "creator", "Family", "")
	require.NoError(t, err)

	_, err = svc.JoinByCode(ctx, "joiner", circle.JoinCode)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(ctx, circle.ID, "joiner"))
	assert.ErrorIs(t, svc.Leave(ctx, circle.ID, "joiner"), ErrNotMember)

	members, err := svc.Members(ctx, circle.ID, "creator")
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestGenerateJoinCode_Charset(t *testing.T) {
	ctx := context.Background()
	svc, _ := circleFixtures(t)

	code, err := svc.GenerateJoinCode(ctx)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, ch := range code {
		assert.Contains(t, codeChars, string(ch))
	}
}
