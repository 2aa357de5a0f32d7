package services

import (
	"context"
	"testing"

	"tracker78-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFriend_ClassifiesContact(t *testing.T) {
	ctx := context.Background()
	svc := NewFriendService(newFakeFriendStore(), newFakeUserStore())

	email, err := svc.AddFriend(ctx, "u1", "Kofi", "kofi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "email", email.ContactType)

	phone, err := svc.AddFriend(ctx, "u1", "Yaw", "+233 555 123 456")
	require.NoError(t, err)
	assert.Equal(t, "phone", phone.ContactType)
}

func TestAddFriend_RejectsInvalidContact(t *testing.T) {
	ctx := context.Background()
	svc := NewFriendService(newFakeFriendStore(), newFakeUserStore())

	_, err := svc.AddFriend(ctx, "u1", "Nobody", "not a contact")
	assert.ErrorIs(t, err, ErrInvalidContact)
}

func TestAddFriend_DuplicateContact(t *testing.T) {
	ctx := context.Background()
	svc := NewFriendService(newFakeFriendStore(), newFakeUserStore())

	_, err := svc.AddFriend(ctx, "u1", "Kofi", "kofi@example.com")
	require.NoError(t, err)

	_, err = svc.AddFriend(ctx, "u1", "Kofi Again", "kofi@example.com")
	assert.ErrorIs(t, err, ErrDuplicateContact)

	friends, err := svc.ListFriends(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestAddFriend_LinksRegisteredAccount(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	require.NoError(t, users.Create(ctx, &models.User{ID: "u2", Email: "kofi@example.com", Name: "Kofi"}))
	svc := NewFriendService(newFakeFriendStore(), users)

	friend, err := svc.AddFriend(ctx, "u1", "Kofi", "kofi@example.com")
	require.NoError(t, err)
	require.NotNil(t, friend.FriendUserID)
	assert.Equal(t, "u2", *friend.FriendUserID)
}

func TestRemoveFriend_ChecksOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewFriendService(newFakeFriendStore(), newFakeUserStore())

	friend, err := svc.AddFriend(ctx, "u1", "Kofi", "kofi@example.com")
	require.NoError(t, err)

	assert.Error(t, svc.RemoveFriend(ctx, "someone-else", friend.ID))
	require.NoError(t, svc.RemoveFriend(ctx, "u1", friend.ID))

	friends, err := svc.ListFriends(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestRemoveFriend_UnknownID(t *testing.T) {
	ctx := context.Background()
	svc := NewFriendService(newFakeFriendStore(), newFakeUserStore())

	assert.ErrorIs(t, svc.RemoveFriend(ctx, "u1", "missing"), ErrNotFound)
}
