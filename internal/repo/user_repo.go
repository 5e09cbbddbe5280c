// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model:
// account creation and lookup, the persisted refresh-credential field, profile
// mutations, the aggregated channel profile, and watch history.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Callers pass usernames and emails
// already case-folded; the repo never normalizes.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// CreateUser inserts a new account row. ID and CreatedAt are assigned here.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByID fetches an account by primary key, or ErrNotFound.
func GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByLogin fetches an account whose folded username or email equals the
// given key, or ErrNotFound.
func GetUserByLogin(ctx context.Context, db *gorm.DB, key string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("username = ? OR email = ?", key, key).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserExists reports whether any account already uses the folded username or
// email. Used for the registration conflict check.
func UserExists(ctx context.Context, db *gorm.DB, username, email string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	return n > 0, err
}

// SetRefreshToken overwrites the persisted refresh credential for the user.
// Overwriting is what invalidates any previously issued refresh token; an
// empty value revokes the session entirely (logout). Returns ErrNotFound when
// the user row is gone.
func SetRefreshToken(ctx context.Context, db *gorm.DB, userID, token string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePasswordHash stores a new password hash for the user.
func UpdatePasswordHash(ctx context.Context, db *gorm.DB, userID, hash string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateAccountDetails sets the mutable profile fields (full name, folded
// email) in one atomic update.
func UpdateAccountDetails(ctx context.Context, db *gorm.DB, userID, fullName, email string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"full_name": fullName, "email": email})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateAvatar replaces the avatar image reference.
func UpdateAvatar(ctx context.Context, db *gorm.DB, userID string, img domain.Image) error {
	return updateImage(ctx, db, userID, "avatar_url", "avatar_public_id", img)
}

// UpdateCoverImage replaces the cover image reference.
func UpdateCoverImage(ctx context.Context, db *gorm.DB, userID string, img domain.Image) error {
	return updateImage(ctx, db, userID, "cover_url", "cover_public_id", img)
}

func updateImage(ctx context.Context, db *gorm.DB, userID, urlCol, idCol string, img domain.Image) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{urlCol: img.URL, idCol: img.PublicID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetChannelProfile returns the aggregated channel page for a folded
// username: public profile fields plus subscriber counts and whether the
// viewer is subscribed. Returns ErrNotFound for an unknown username.
func GetChannelProfile(ctx context.Context, db *gorm.DB, viewerID, username string) (*ChannelProfileView, error) {
	var out ChannelProfileView
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Select(`users.id, users.username, users.full_name, users.email,
			users.avatar_url, users.cover_url,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = users.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = users.id) AS subscribed_to_count,
			EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = users.id AND s.subscriber_id = ?) AS is_subscribed`,
			viewerID).
		Where("users.username = ?", username).
		Take(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpsertWatchHistory records that the user watched the video. Re-watching
// refreshes WatchedAt on the existing row instead of inserting a duplicate
// (set semantics).
func UpsertWatchHistory(ctx context.Context, db *gorm.DB, userID, videoID string) error {
	now := time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.WatchHistoryEntry{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Update("watched_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&domain.WatchHistoryEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: now,
	}).Error
}

// DeleteWatchHistoryByVideo removes every history row pointing at the video
// (cascade step when the video is deleted).
func DeleteWatchHistoryByVideo(ctx context.Context, db *gorm.DB, videoID string) error {
	return db.WithContext(ctx).Delete(&domain.WatchHistoryEntry{}, "video_id = ?", videoID).Error
}

// CountWatchHistory returns the number of history rows for the user.
func CountWatchHistory(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.WatchHistoryEntry{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return n, err
}

// ListWatchHistoryPage returns one page of the user's watch history, most
// recently watched first, with the owner projection joined in.
func ListWatchHistoryPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]WatchHistoryItem, error) {
	var out []WatchHistoryItem
	err := db.WithContext(ctx).
		Model(&domain.WatchHistoryEntry{}).
		Select(`videos.id, videos.title, videos.thumb_url, videos.duration, videos.views,
			watch_history.watched_at,
			owners.id AS owner_id, owners.username AS owner_username,
			owners.full_name AS owner_full_name, owners.avatar_url AS owner_avatar_url`).
		Joins("JOIN videos ON videos.id = watch_history.video_id").
		Joins("JOIN users owners ON owners.id = videos.owner_id").
		Where("watch_history.user_id = ?", userID).
		Order("watch_history.watched_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&out).Error
	if out == nil {
		out = []WatchHistoryItem{}
	}
	return out, err
}
