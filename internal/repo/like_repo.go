// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Like edges.
// A like targets exactly one of a video, comment, or tweet; the toggle
// services look the edge up by (actor, target) and insert or delete it.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// LikeTarget names the column a like edge hangs off.
type LikeTarget string

const (
	LikeVideo   LikeTarget = "video_id"
	LikeComment LikeTarget = "comment_id"
	LikeTweet   LikeTarget = "tweet_id"
)

// FindLike returns the like edge for (actor, target), or nil when the actor
// has not liked the target. A nil result with nil error is the "off" state.
func FindLike(ctx context.Context, db *gorm.DB, actorID string, target LikeTarget, targetID string) (*domain.Like, error) {
	var l domain.Like
	err := db.WithContext(ctx).
		Where("liked_by_id = ? AND "+string(target)+" = ?", actorID, targetID).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateLike inserts the edge for (actor, target).
func CreateLike(ctx context.Context, db *gorm.DB, actorID string, target LikeTarget, targetID string) error {
	l := &domain.Like{
		ID:        uuid.NewString(),
		LikedByID: actorID,
		CreatedAt: time.Now().UTC(),
	}
	id := targetID
	switch target {
	case LikeVideo:
		l.VideoID = &id
	case LikeComment:
		l.CommentID = &id
	case LikeTweet:
		l.TweetID = &id
	}
	return db.WithContext(ctx).Create(l).Error
}

// DeleteLike removes an edge by primary key.
func DeleteLike(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Delete(&domain.Like{}, "id = ?", id).Error
}

// DeleteLikesFor removes every like edge pointing at the target (cascade
// step when the target itself is deleted).
func DeleteLikesFor(ctx context.Context, db *gorm.DB, target LikeTarget, targetID string) error {
	return db.WithContext(ctx).Delete(&domain.Like{}, string(target)+" = ?", targetID).Error
}

// DeleteCommentLikesByVideo removes the like edges on every comment of the
// video (cascade step run before the comments themselves are deleted).
func DeleteCommentLikesByVideo(ctx context.Context, db *gorm.DB, videoID string) error {
	return db.WithContext(ctx).
		Where("comment_id IN (?)", db.Model(&domain.Comment{}).
			Select("id").
			Where("video_id = ?", videoID)).
		Delete(&domain.Like{}).Error
}

// ListLikedVideos returns the published videos the user has liked, most
// recently liked first, with the owner projection joined in.
func ListLikedVideos(ctx context.Context, db *gorm.DB, userID string) ([]LikedVideoView, error) {
	var out []LikedVideoView
	err := db.WithContext(ctx).
		Model(&domain.Like{}).
		Select(`videos.id, videos.title, videos.thumb_url, videos.duration, videos.views,
			likes.created_at AS liked_at,
			owners.id AS owner_id, owners.username AS owner_username,
			owners.full_name AS owner_full_name, owners.avatar_url AS owner_avatar_url`).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Joins("JOIN users owners ON owners.id = videos.owner_id").
		Where("likes.liked_by_id = ? AND likes.video_id IS NOT NULL AND videos.is_published = ?", userID, true).
		Order("likes.created_at DESC").
		Scan(&out).Error
	if out == nil {
		out = []LikedVideoView{}
	}
	return out, err
}
