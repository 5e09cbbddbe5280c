// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Subscription
// edges and the two joined listings built over them: a channel's subscribers
// and a user's subscribed channels (with each channel's latest video).
package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// FindSubscription returns the edge for (subscriber, channel), or nil when
// no subscription exists.
func FindSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) (*domain.Subscription, error) {
	var s domain.Subscription
	err := db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSubscription inserts the edge for (subscriber, channel).
func CreateSubscription(ctx context.Context, db *gorm.DB, subscriberID, channelID string) error {
	return db.WithContext(ctx).Create(&domain.Subscription{
		ID:           uuid.NewString(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now().UTC(),
	}).Error
}

// DeleteSubscription removes an edge by primary key.
func DeleteSubscription(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.Subscription{}, "id = ?", id).Error
}

// ListChannelSubscribers returns the subscribers of a channel. Each row
// carries the subscriber's own subscriber count and whether the channel
// follows that subscriber back.
func ListChannelSubscribers(ctx context.Context, db *gorm.DB, channelID string) ([]SubscriberView, error) {
	var out []SubscriberView
	err := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Select(`subs.id, subs.username, subs.full_name, subs.avatar_url,
			(SELECT COUNT(*) FROM subscriptions s2 WHERE s2.channel_id = subs.id) AS subscribers_count,
			EXISTS(SELECT 1 FROM subscriptions s3 WHERE s3.channel_id = subs.id AND s3.subscriber_id = ?) AS subscribed_to_subscriber`,
			channelID).
		Joins("JOIN users subs ON subs.id = subscriptions.subscriber_id").
		Where("subscriptions.channel_id = ?", channelID).
		Order("subscriptions.created_at DESC").
		Scan(&out).Error
	if out == nil {
		out = []SubscriberView{}
	}
	return out, err
}

// subscribedChannelRow is the flat scan target for ListSubscribedChannels;
// the latest-video columns are nullable because a channel may have no
// published uploads yet.
type subscribedChannelRow struct {
	ID                string
	Username          string
	FullName          string
	AvatarURL         string `gorm:"column:avatar_url"`
	LatestVideoID     sql.NullString
	LatestVideoURL    sql.NullString `gorm:"column:latest_video_url"`
	LatestThumbURL    sql.NullString `gorm:"column:latest_thumb_url"`
	LatestTitle       sql.NullString
	LatestDescription sql.NullString
	LatestDuration    sql.NullFloat64
	LatestViews       sql.NullInt64
	LatestCreatedAt   sql.NullTime
}

// ListSubscribedChannels returns the channels the user subscribes to, each
// with its most recent published upload (if any).
func ListSubscribedChannels(ctx context.Context, db *gorm.DB, subscriberID string) ([]SubscribedChannelView, error) {
	var rows []subscribedChannelRow
	err := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Select(`channels.id, channels.username, channels.full_name, channels.avatar_url,
			latest.id AS latest_video_id, latest.video_url AS latest_video_url,
			latest.thumb_url AS latest_thumb_url, latest.title AS latest_title,
			latest.description AS latest_description, latest.duration AS latest_duration,
			latest.views AS latest_views, latest.created_at AS latest_created_at`).
		Joins("JOIN users channels ON channels.id = subscriptions.channel_id").
		Joins(`LEFT JOIN videos latest ON latest.id = (
			SELECT v.id FROM videos v
			WHERE v.owner_id = channels.id AND v.is_published = 1
			ORDER BY v.created_at DESC LIMIT 1)`).
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]SubscribedChannelView, 0, len(rows))
	for _, r := range rows {
		v := SubscribedChannelView{
			ID:        r.ID,
			Username:  r.Username,
			FullName:  r.FullName,
			AvatarURL: r.AvatarURL,
		}
		if r.LatestVideoID.Valid {
			v.LatestVideo = &LatestVideoView{
				ID:           r.LatestVideoID.String,
				VideoURL:     r.LatestVideoURL.String,
				ThumbnailURL: r.LatestThumbURL.String,
				Title:        r.LatestTitle.String,
				Description:  r.LatestDescription.String,
				Duration:     r.LatestDuration.Float64,
				Views:        r.LatestViews.Int64,
				CreatedAt:    r.LatestCreatedAt.Time,
			}
		}
		out = append(out, v)
	}
	return out, nil
}
