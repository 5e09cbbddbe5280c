// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Tweet model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// CreateTweet inserts a tweet owned by ownerID.
func CreateTweet(ctx context.Context, db *gorm.DB, ownerID, content string) (*domain.Tweet, error) {
	t := &domain.Tweet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTweet fetches a tweet by id, or ErrNotFound.
func GetTweet(ctx context.Context, db *gorm.DB, id string) (*domain.Tweet, error) {
	var t domain.Tweet
	if err := db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListUserTweets returns all tweets by userID, newest first, with owner
// projection, like count, and the viewer's like flag.
func ListUserTweets(ctx context.Context, db *gorm.DB, viewerID, userID string) ([]TweetView, error) {
	var out []TweetView
	err := db.WithContext(ctx).
		Model(&domain.Tweet{}).
		Select(`tweets.id, tweets.content, tweets.created_at,
			(SELECT COUNT(*) FROM likes l WHERE l.tweet_id = tweets.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes l WHERE l.tweet_id = tweets.id AND l.liked_by_id = ?) AS is_liked,
			owners.id AS owner_id, owners.username AS owner_username,
			owners.full_name AS owner_full_name, owners.avatar_url AS owner_avatar_url`,
			viewerID).
		Joins("JOIN users owners ON owners.id = tweets.owner_id").
		Where("tweets.owner_id = ?", userID).
		Order("tweets.created_at DESC").
		Scan(&out).Error
	if out == nil {
		out = []TweetView{}
	}
	return out, err
}

// UpdateTweetContent replaces the tweet body in one atomic update.
func UpdateTweetContent(ctx context.Context, db *gorm.DB, id, content string) error {
	res := db.WithContext(ctx).
		Model(&domain.Tweet{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTweet removes a tweet row.
func DeleteTweet(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Tweet{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
