package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
)

// ----- Fake repo -----

type fakeSubRepo struct {
	users map[string]bool
	edges map[string]*domain.Subscription // key subscriber|channel

	subscribers []repo.SubscriberView
	channels    []repo.SubscribedChannelView
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{users: map[string]bool{}, edges: map[string]*domain.Subscription{}}
}

func (r *fakeSubRepo) GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	if r.users[id] {
		return &domain.User{ID: id}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubRepo) FindSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) (*domain.Subscription, error) {
	return r.edges[subscriberID+"|"+channelID], nil
}

func (r *fakeSubRepo) CreateSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) error {
	k := subscriberID + "|" + channelID
	r.edges[k] = &domain.Subscription{ID: k, SubscriberID: subscriberID, ChannelID: channelID}
	return nil
}

func (r *fakeSubRepo) DeleteSubscription(ctx context.Context, db *gorm.DB, id string) error {
	delete(r.edges, id)
	return nil
}

func (r *fakeSubRepo) ListChannelSubscribers(ctx context.Context, db *gorm.DB, channelID string) ([]repo.SubscriberView, error) {
	return r.subscribers, nil
}

func (r *fakeSubRepo) ListSubscribedChannels(ctx context.Context, db *gorm.DB, subscriberID string) ([]repo.SubscribedChannelView, error) {
	return r.channels, nil
}

// ----- Tests -----

func TestSubscriptionToggle_OnOff(t *testing.T) {
	fr := newFakeSubRepo()
	fr.users["channel"] = true
	svc := NewSubscriptionService(nil, fr)

	on, err := svc.Toggle(context.Background(), "fan", "channel")
	if err != nil || !on {
		t.Fatalf("first toggle: on=%v err=%v", on, err)
	}
	on, err = svc.Toggle(context.Background(), "fan", "channel")
	if err != nil || on {
		t.Fatalf("second toggle: on=%v err=%v", on, err)
	}
	if len(fr.edges) != 0 {
		t.Fatalf("edge should be gone: %v", fr.edges)
	}
}

func TestSubscriptionToggle_SelfRejected(t *testing.T) {
	fr := newFakeSubRepo()
	fr.users["me"] = true
	svc := NewSubscriptionService(nil, fr)

	if _, err := svc.Toggle(context.Background(), "me", "me"); !errors.Is(err, ErrSelfSubscribe) {
		t.Fatalf("expected ErrSelfSubscribe, got %v", err)
	}
}

func TestSubscriptionToggle_UnknownChannel(t *testing.T) {
	svc := NewSubscriptionService(nil, newFakeSubRepo())
	if _, err := svc.Toggle(context.Background(), "fan", "ghost"); !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestSubscribers_UnknownChannel(t *testing.T) {
	fr := newFakeSubRepo()
	fr.users["channel"] = true
	fr.subscribers = []repo.SubscriberView{{Username: "fan"}}
	svc := NewSubscriptionService(nil, fr)

	subs, err := svc.Subscribers(context.Background(), "channel")
	if err != nil || len(subs) != 1 {
		t.Fatalf("Subscribers: subs=%v err=%v", subs, err)
	}
	if _, err := svc.Subscribers(context.Background(), "ghost"); !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestSubscribedChannels(t *testing.T) {
	fr := newFakeSubRepo()
	fr.users["fan"] = true
	fr.channels = []repo.SubscribedChannelView{{Username: "channel"}}
	svc := NewSubscriptionService(nil, fr)

	chs, err := svc.SubscribedChannels(context.Background(), "fan")
	if err != nil || len(chs) != 1 {
		t.Fatalf("SubscribedChannels: chs=%v err=%v", chs, err)
	}
	if _, err := svc.SubscribedChannels(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
