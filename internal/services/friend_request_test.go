package services

import (
	"context"
	"testing"

	"tracker78-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestFixtures(t *testing.T) (*FriendRequestService, *FriendService, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	friends := newFakeFriendStore()
	require.NoError(t, users.Create(context.Background(), &models.User{ID: "sender", Email: "sender@example.com", Name: "Sender"}))
	require.NoError(t, users.Create(context.Background(), &models.User{ID: "recipient", Email: "recipient@example.com", Name: "Recipient"}))
	return NewFriendRequestService(newFakeRequestStore(), friends, users),
		NewFriendService(friends, users),
		users
}

func TestSendRequest_ResolvesRecipient(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := requestFixtures(t)

	req, err := svc.Send(ctx, "sender", "recipient@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, req.Status)
	assert.Equal(t, "email", req.ContactType)
	require.NotNil(t, req.RecipientID)
	assert.Equal(t, "recipient", *req.RecipientID)
}

func TestSendRequest_UnregisteredContactStaysUnresolved(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := requestFixtures(t)

	req, err := svc.Send(ctx, "sender", "+233 555 123 456")
	require.NoError(t, err)
	assert.Nil(t, req.RecipientID)
	assert.Equal(t, "phone", req.ContactType)
}

func TestSendRequest_RejectsSelf(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := requestFixtures(t)

	_, err := svc.Send(ctx, "sender", "sender@example.com")
	assert.ErrorIs(t, err, ErrCannotRequestSelf)
}

func TestSendRequest_RejectsDuplicatePending(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := requestFixtures(t)

	_, err := svc.Send(ctx, "sender", "recipient@example.com")
	require.NoError(t, err)

	_, err = svc.Send(ctx, "sender", "recipient@example.com")
	assert.ErrorIs(t, err, ErrRequestPending)
}

func TestSendRequest_RejectsAlreadyTrackedContact(t *testing.T) {
	ctx := context.Background()
	svc, friendSvc, _ := requestFixtures(t)

	_, err := friendSvc.AddFriend(ctx, "sender", "Recipient", "recipient@example.com")
	require.NoError(t, err)

	_, err = svc.Send(ctx, "sender", "recipient@example.com")
	assert.ErrorIs(t, err, ErrDuplicateContact)
}

func TestAccept_CreatesFriendForSender(t *testing.T) {
	ctx := context.Background()
	svc, friendSvc, _ := requestFixtures(t)

	req, err := svc.Send(ctx, "sender", "recipient@example.com")
	require.NoError(t, err)

	pending, err := svc.ListPending(ctx, "recipient")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Sender", pending[0].Sender.Name)

	result, err := svc.Accept(ctx, "recipient", req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, result.RequestID)
	assert.Equal(t, "sender", result.SenderID)

	// The friend entry lands on the sender's list, pointing at the
	// recipient's account.
	friends, err := friendSvc.ListFriends(ctx, "sender")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.NotNil(t, friends[0].FriendUserID)
	assert.Equal(t, "recipient", *friends[0].FriendUserID)

	// Accepting again fails: the request is no longer pending.
	_, err = svc.Accept(ctx, "recipient", req.ID)
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestAccept_OnlyRecipientMay(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := requestFixtures(t)

	req, err := svc.Send(ctx, "sender", "recipient@example.com")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, "someone-else", req.ID)
	assert.ErrorIs(t, err, ErrNotRequestOwner)
}

func TestReject_ResolvesWithoutFriend(t *testing.T) {
	ctx := context.Background()
	svc, friendSvc, _ := requestFixtures(t)

	req, err := svc.Send(ctx, "sender", "recipient@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, "recipient", req.ID))

	friends, err := friendSvc.ListFriends(ctx, "sender")
	require.NoError(t, err)
	assert.Empty(t, friends)

	pending, err := svc.ListPending(ctx, "recipient")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
