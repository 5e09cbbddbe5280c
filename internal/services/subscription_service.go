// Package services – SubscriptionService
//
// Subscriptions are existence-based toggles between a subscriber and a
// channel (both users). Self-subscription is rejected.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
)

// SubscriptionRepo defines the repository contract required by
// SubscriptionService.
type SubscriptionRepo interface {
	GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)
	FindSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) (*domain.Subscription, error)
	CreateSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) error
	DeleteSubscription(ctx context.Context, db *gorm.DB, id string) error
	ListChannelSubscribers(ctx context.Context, db *gorm.DB, channelID string) ([]repo.SubscriberView, error)
	ListSubscribedChannels(ctx context.Context, db *gorm.DB, subscriberID string) ([]repo.SubscribedChannelView, error)
}

// SubscriptionService provides channel subscription toggles and listings.
type SubscriptionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the subscription repository used by this service.
	Repo SubscriptionRepo
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(db *gorm.DB, r SubscriptionRepo) *SubscriptionService {
	return &SubscriptionService{DB: db, Repo: r}
}

// Toggle flips the caller's subscription to the channel. Returns true when
// the subscription now exists, false when it was removed.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if subscriberID == channelID {
		return false, ErrSelfSubscribe
	}
	if _, err := s.Repo.GetUserByID(ctx, s.DB, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrChannelNotFound
		}
		return false, err
	}

	existing, err := s.Repo.FindSubscription(ctx, s.DB, subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, s.Repo.DeleteSubscription(ctx, s.DB, existing.ID)
	}
	return true, s.Repo.CreateSubscription(ctx, s.DB, subscriberID, channelID)
}

// Subscribers returns the subscribers of a channel, newest first, each with
// their own subscriber count and whether the channel follows them back.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string) ([]repo.SubscriberView, error) {
	if _, err := s.Repo.GetUserByID(ctx, s.DB, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.Repo.ListChannelSubscribers(ctx, s.DB, channelID)
}

// SubscribedChannels returns the channels the user subscribes to, each with
// its most recent published upload.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string) ([]repo.SubscribedChannelView, error) {
	if _, err := s.Repo.GetUserByID(ctx, s.DB, subscriberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Repo.ListSubscribedChannels(ctx, s.DB, subscriberID)
}
