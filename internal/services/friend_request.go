package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tracker78-backend/internal/contact"
	"tracker78-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrRequestPending    = errors.New("request already pending for contact")
	ErrRequestNotPending = errors.New("request is not pending")
	ErrNotRequestOwner   = errors.New("request is not addressed to user")
	ErrCannotRequestSelf = errors.New("cannot send request to yourself")
)

type friendRequestStore interface {
	Create(ctx context.Context, req *models.FriendRequest) error
	GetByID(ctx context.Context, id string) (*models.FriendRequest, error)
	ListPendingForRecipient(ctx context.Context, recipientID string) ([]*models.FriendRequest, error)
	PendingExists(ctx context.Context, senderID, contact string) (bool, error)
	Resolve(ctx context.Context, id string, status models.FriendRequestStatus) error
}

// PendingRequest is a pending request joined with its sender snapshot
type PendingRequest struct {
	ID          string    `json:"id"`
	Contact     string    `json:"contact"`
	ContactType string    `json:"contact_type"`
	Sender      Sender    `json:"sender"`
	SentAt      time.Time `json:"sent_at"`
	Status      string    `json:"status"`
}

// Sender identifies who sent a request
type Sender struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AcceptResult reports the friend entry created for the sender on accept
type AcceptResult struct {
	RequestID string `json:"request_id"`
	FriendID  string `json:"friend_id"`
	SenderID  string `json:"sender_id"`
}

// FriendRequestService handles tracking-request business logic
type FriendRequestService struct {
	requests friendRequestStore
	friends  friendStore
	users    userStore
}

// NewFriendRequestService creates a new friend request service
func NewFriendRequestService(requests friendRequestStore, friends friendStore, users userStore) *FriendRequestService {
	return &FriendRequestService{
		requests: requests,
		friends:  friends,
		users:    users,
	}
}

// Send creates a pending tracking request to a contact. The recipient is
// resolved to a registered account when the contact is a known email.
func (s *FriendRequestService) Send(ctx context.Context, senderID, contactStr string) (*models.FriendRequest, error) {
	contactStr = strings.TrimSpace(contactStr)
	if !contact.Valid(contactStr) {
		return nil, ErrInvalidContact
	}

	tracked, err := s.friends.ContactExists(ctx, senderID, contactStr)
	if err != nil {
		return nil, fmt.Errorf("failed to check contact: %w", err)
	}
	if tracked {
		return nil, ErrDuplicateContact
	}

	pending, err := s.requests.PendingExists(ctx, senderID, contactStr)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending request: %w", err)
	}
	if pending {
		return nil, ErrRequestPending
	}

	req := &models.FriendRequest{
		ID:               uuid.New().String(),
		SenderID:         senderID,
		RecipientContact: contactStr,
		ContactType:      contact.Classify(contactStr),
		Status:           models.FriendRequestPending,
		CreatedAt:        time.Now(),
	}

	if req.ContactType == contact.TypeEmail {
		if account, err := s.users.GetByEmail(ctx, contactStr); err == nil {
			if account.ID == senderID {
				return nil, ErrCannotRequestSelf
			}
			req.RecipientID = &account.ID
		}
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return req, nil
}

// ListPending returns pending requests addressed to the user, with sender
// snapshots attached.
func (s *FriendRequestService) ListPending(ctx context.Context, recipientID string) ([]*PendingRequest, error) {
	requests, err := s.requests.ListPendingForRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	pending := make([]*PendingRequest, 0, len(requests))
	for _, req := range requests {
		p := &PendingRequest{
			ID:          req.ID,
			Contact:     req.RecipientContact,
			ContactType: req.ContactType,
			SentAt:      req.CreatedAt,
			Status:      string(req.Status),
		}
		if sender, err := s.users.GetByID(ctx, req.SenderID); err == nil {
			p.Sender = Sender{ID: sender.ID, Name: sender.Name, Email: sender.Email}
		}
		pending = append(pending, p)
	}
	return pending, nil
}

// Accept resolves a pending request and creates an active friend entry for
// the sender. It does not enable location sharing; that is a separate,
// explicit grant by the accepting user.
func (s *FriendRequestService) Accept(ctx context.Context, recipientID, requestID string) (*AcceptResult, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.RecipientID == nil || *req.RecipientID != recipientID {
		return nil, ErrNotRequestOwner
	}
	if req.Status != models.FriendRequestPending {
		return nil, ErrRequestNotPending
	}

	if err := s.requests.Resolve(ctx, requestID, models.FriendRequestAccepted); err != nil {
		return nil, err
	}

	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	friend := &models.Friend{
		ID:           uuid.New().String(),
		UserID:       req.SenderID,
		FriendUserID: &recipient.ID,
		Name:         recipient.Name,
		Contact:      req.RecipientContact,
		ContactType:  req.ContactType,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.friends.Create(ctx, friend); err != nil {
		return nil, fmt.Errorf("failed to create friend from request: %w", err)
	}

	return &AcceptResult{RequestID: requestID, FriendID: friend.ID, SenderID: req.SenderID}, nil
}

// Reject resolves a pending request without creating a friend
func (s *FriendRequestService) Reject(ctx context.Context, recipientID, requestID string) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return ErrNotFound
	}
	if req.RecipientID == nil || *req.RecipientID != recipientID {
		return ErrNotRequestOwner
	}
	if req.Status != models.FriendRequestPending {
		return ErrRequestNotPending
	}
	return s.requests.Resolve(ctx, requestID, models.FriendRequestRejected)
}
