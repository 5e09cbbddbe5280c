// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for playlists and
// their video membership rows.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// CreatePlaylist inserts a playlist owned by ownerID.
func CreatePlaylist(ctx context.Context, db *gorm.DB, ownerID, name, description string) (*domain.Playlist, error) {
	p := &domain.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlaylist fetches a playlist by id, or ErrNotFound.
func GetPlaylist(ctx context.Context, db *gorm.DB, id string) (*domain.Playlist, error) {
	var p domain.Playlist
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListUserPlaylists returns all playlists owned by userID, newest first.
func ListUserPlaylists(ctx context.Context, db *gorm.DB, userID string) ([]domain.Playlist, error) {
	var out []domain.Playlist
	err := db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListPlaylistVideos returns the videos of a playlist in insertion order.
func ListPlaylistVideos(ctx context.Context, db *gorm.DB, playlistID string) ([]PlaylistVideoItem, error) {
	var out []PlaylistVideoItem
	err := db.WithContext(ctx).
		Model(&domain.PlaylistVideo{}).
		Select(`videos.id, videos.title, videos.thumb_url, videos.duration, videos.views,
			playlist_videos.added_at`).
		Joins("JOIN videos ON videos.id = playlist_videos.video_id").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Order("playlist_videos.added_at ASC").
		Scan(&out).Error
	if out == nil {
		out = []PlaylistVideoItem{}
	}
	return out, err
}

// UpdatePlaylistDetails sets name and description in one atomic update.
func UpdatePlaylistDetails(ctx context.Context, db *gorm.DB, id, name, description string) error {
	res := db.WithContext(ctx).
		Model(&domain.Playlist{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "description": description})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePlaylist removes the playlist and its membership rows.
func DeletePlaylist(ctx context.Context, db *gorm.DB, id string) error {
	if err := db.WithContext(ctx).Delete(&domain.PlaylistVideo{}, "playlist_id = ?", id).Error; err != nil {
		return err
	}
	res := db.WithContext(ctx).Delete(&domain.Playlist{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasPlaylistVideo reports whether the video is already in the playlist.
func HasPlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&n).Error
	return n > 0, err
}

// AddPlaylistVideo inserts a membership row.
func AddPlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) error {
	return db.WithContext(ctx).Create(&domain.PlaylistVideo{
		ID:         uuid.NewString(),
		PlaylistID: playlistID,
		VideoID:    videoID,
		AddedAt:    time.Now().UTC(),
	}).Error
}

// RemovePlaylistVideo deletes a membership row.
func RemovePlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) error {
	res := db.WithContext(ctx).
		Delete(&domain.PlaylistVideo{}, "playlist_id = ? AND video_id = ?", playlistID, videoID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveVideoFromAllPlaylists removes every membership row for a video
// (cascade step when the video is deleted).
func RemoveVideoFromAllPlaylists(ctx context.Context, db *gorm.DB, videoID string) error {
	return db.WithContext(ctx).Delete(&domain.PlaylistVideo{}, "video_id = ?", videoID).Error
}
