package services

import (
	"context"
	"errors"
	"strings"

	"tracker78-backend/internal/models"
)

var errFakeNotFound = errors.New("not found")

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserStore) Search(ctx context.Context, term string, limit int) ([]*models.User, error) {
	var out []*models.User
	for _, user := range f.users {
		if strings.Contains(user.Name, term) || strings.Contains(user.Email, term) {
			out = append(out, user)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	user, ok := f.users[userID]
	if !ok {
		return errFakeNotFound
	}
	user.AvatarURL = &avatarURL
	return nil
}

type fakeFriendStore struct {
	friends map[string]*models.Friend
}

func newFakeFriendStore() *fakeFriendStore {
	return &fakeFriendStore{friends: make(map[string]*models.Friend)}
}

func (f *fakeFriendStore) Create(ctx context.Context, friend *models.Friend) error {
	f.friends[friend.ID] = friend
	return nil
}

func (f *fakeFriendStore) GetByID(ctx context.Context, id string) (*models.Friend, error) {
	friend, ok := f.friends[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return friend, nil
}

func (f *fakeFriendStore) ListByUser(ctx context.Context, userID string) ([]*models.Friend, error) {
	var out []*models.Friend
	for _, friend := range f.friends {
		if friend.UserID == userID && friend.IsActive {
			out = append(out, friend)
		}
	}
	return out, nil
}

func (f *fakeFriendStore) ContactExists(ctx context.Context, userID, contact string) (bool, error) {
	for _, friend := range f.friends {
		if friend.UserID == userID && friend.Contact == contact && friend.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFriendStore) Deactivate(ctx context.Context, id string) error {
	friend, ok := f.friends[id]
	if !ok {
		return errFakeNotFound
	}
	friend.IsActive = false
	return nil
}

type fakeRequestStore struct {
	requests map[string]*models.FriendRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[string]*models.FriendRequest)}
}

func (f *fakeRequestStore) Create(ctx context.Context, req *models.FriendRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestStore) GetByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return req, nil
}

func (f *fakeRequestStore) ListPendingForRecipient(ctx context.Context, recipientID string) ([]*models.FriendRequest, error) {
	var out []*models.FriendRequest
	for _, req := range f.requests {
		if req.RecipientID != nil && *req.RecipientID == recipientID && req.Status == models.FriendRequestPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) PendingExists(ctx context.Context, senderID, contact string) (bool, error) {
	for _, req := range f.requests {
		if req.SenderID == senderID && req.RecipientContact == contact && req.Status == models.FriendRequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestStore) Resolve(ctx context.Context, id string, status models.FriendRequestStatus) error {
	req, ok := f.requests[id]
	if !ok {
		return errFakeNotFound
	}
	if req.Status != models.FriendRequestPending {
		return errors.New("request already resolved")
	}
	req.Status = status
	return nil
}

type fakeCircleStore struct {
	circles map[string]*models.Circle
	members []*models.CircleMember
}

func newFakeCircleStore() *fakeCircleStore {
	return &fakeCircleStore{circles: make(map[string]*models.Circle)}
}

func (f *fakeCircleStore) Create(ctx context.Context, circle *models.Circle) error {
	f.circles[circle.ID] = circle
	return nil
}

func (f *fakeCircleStore) GetByID(ctx context.Context, id string) (*models.Circle, error) {
	circle, ok := f.circles[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return circle, nil
}

func (f *fakeCircleStore) GetByJoinCode(ctx context.Context, code string) (*models.Circle, error) {
	for _, circle := range f.circles {
		if circle.JoinCode == code {
			return circle, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeCircleStore) JoinCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := f.GetByJoinCode(ctx, code)
	return err == nil, nil
}

func (f *fakeCircleStore) AddMember(ctx context.Context, member *models.CircleMember) error {
	f.members = append(f.members, member)
	return nil
}

func (f *fakeCircleStore) RemoveMember(ctx context.Context, circleID, userID string) error {
	for i, m := range f.members {
		if m.CircleID == circleID && m.UserID == userID {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return errFakeNotFound
}

func (f *fakeCircleStore) ListMembers(ctx context.Context, circleID string) ([]*models.CircleMember, error) {
	var out []*models.CircleMember
	for _, m := range f.members {
		if m.CircleID == circleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCircleStore) IsMember(ctx context.Context, circleID, userID string) (bool, error) {
	for _, m := range f.members {
		if m.CircleID == circleID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}
