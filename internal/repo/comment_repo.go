// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model and the joined comment listing of a video page.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// CreateComment inserts a comment on a video.
func CreateComment(ctx context.Context, db *gorm.DB, videoID, ownerID, content string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetComment fetches a comment by id, or ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountVideoComments returns the total number of comments on a video.
func CountVideoComments(ctx context.Context, db *gorm.DB, videoID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("video_id = ?", videoID).
		Count(&n).Error
	return n, err
}

// ListVideoCommentsPage returns one page of a video's comments, newest
// first, with the owner projection, like count, and the viewer's like flag.
func ListVideoCommentsPage(ctx context.Context, db *gorm.DB, viewerID, videoID string, offset, limit int) ([]CommentView, error) {
	var out []CommentView
	err := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select(`comments.id, comments.content, comments.created_at,
			(SELECT COUNT(*) FROM likes l WHERE l.comment_id = comments.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes l WHERE l.comment_id = comments.id AND l.liked_by_id = ?) AS is_liked,
			owners.id AS owner_id, owners.username AS owner_username,
			owners.full_name AS owner_full_name, owners.avatar_url AS owner_avatar_url`,
			viewerID).
		Joins("JOIN users owners ON owners.id = comments.owner_id").
		Where("comments.video_id = ?", videoID).
		Order("comments.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&out).Error
	if out == nil {
		out = []CommentView{}
	}
	return out, err
}

// UpdateCommentContent replaces the comment body in one atomic update.
// Returns ErrNotFound when no row matched.
func UpdateCommentContent(ctx context.Context, db *gorm.DB, id, content string) error {
	res := db.WithContext(ctx).
		Model(&domain.Comment{}).
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

// DeleteComment removes a comment row.
func DeleteComment(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCommentsByVideo removes all comments of a video (cascade step).
func DeleteCommentsByVideo(ctx context.Context, db *gorm.DB, videoID string) error {
	return db.WithContext(ctx).Delete(&domain.Comment{}, "video_id = ?", videoID).Error
}
