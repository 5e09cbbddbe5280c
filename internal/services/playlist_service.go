// Package services – PlaylistService
//
// Playlists are user-owned collections of videos. Reads are public; every
// mutation is gated on ownership.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
)

// PlaylistRepo defines the repository contract required by PlaylistService.
type PlaylistRepo interface {
	CreatePlaylist(ctx context.Context, db *gorm.DB, ownerID, name, description string) (*domain.Playlist, error)
	GetPlaylist(ctx context.Context, db *gorm.DB, id string) (*domain.Playlist, error)
	ListUserPlaylists(ctx context.Context, db *gorm.DB, userID string) ([]domain.Playlist, error)
	ListPlaylistVideos(ctx context.Context, db *gorm.DB, playlistID string) ([]repo.PlaylistVideoItem, error)
	UpdatePlaylistDetails(ctx context.Context, db *gorm.DB, id, name, description string) error
	DeletePlaylist(ctx context.Context, db *gorm.DB, id string) error
	HasPlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) (bool, error)
	AddPlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) error
	RemovePlaylistVideo(ctx context.Context, db *gorm.DB, playlistID, videoID string) error
	GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error)
}

// PlaylistDetail is a playlist together with its videos in insertion order.
type PlaylistDetail struct {
	Playlist *domain.Playlist        `json:"playlist"`
	Videos   []repo.PlaylistVideoItem `json:"videos"`
}

// PlaylistService provides playlist CRUD and membership operations.
type PlaylistService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the playlist repository used by this service.
	Repo PlaylistRepo
}

// NewPlaylistService constructs a PlaylistService.
func NewPlaylistService(db *gorm.DB, r PlaylistRepo) *PlaylistService {
	return &PlaylistService{DB: db, Repo: r}
}

// Create makes a new playlist owned by ownerID. The name is required.
func (s *PlaylistService) Create(ctx context.Context, ownerID, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}
	return s.Repo.CreatePlaylist(ctx, s.DB, ownerID, name, strings.TrimSpace(description))
}

// Get returns the playlist and its videos.
func (s *PlaylistService) Get(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	p, err := s.Repo.GetPlaylist(ctx, s.DB, playlistID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, err
	}
	videos, err := s.Repo.ListPlaylistVideos(ctx, s.DB, playlistID)
	if err != nil {
		return nil, err
	}
	return &PlaylistDetail{Playlist: p, Videos: videos}, nil
}

// ListUser returns all playlists owned by userID, newest first.
func (s *PlaylistService) ListUser(ctx context.Context, userID string) ([]domain.Playlist, error) {
	return s.Repo.ListUserPlaylists(ctx, s.DB, userID)
}

// Update sets the name and description of a playlist owned by the caller.
func (s *PlaylistService) Update(ctx context.Context, callerID, playlistID, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}
	if _, err := s.owned(ctx, callerID, playlistID); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdatePlaylistDetails(ctx, s.DB, playlistID, name, strings.TrimSpace(description)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	p, err := s.Repo.GetPlaylist(ctx, s.DB, playlistID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlaylistNotFound
	}
	return p, err
}

// Delete removes a playlist owned by the caller together with its membership
// rows. The videos themselves are untouched.
func (s *PlaylistService) Delete(ctx context.Context, callerID, playlistID string) error {
	if _, err := s.owned(ctx, callerID, playlistID); err != nil {
		return err
	}
	err := s.Repo.DeletePlaylist(ctx, s.DB, playlistID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPlaylistNotFound
	}
	return err
}

// AddVideo inserts a video into a playlist owned by the caller.
func (s *PlaylistService) AddVideo(ctx context.Context, callerID, playlistID, videoID string) error {
	if _, err := s.owned(ctx, callerID, playlistID); err != nil {
		return err
	}
	if _, err := s.Repo.GetVideo(ctx, s.DB, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	member, err := s.Repo.HasPlaylistVideo(ctx, s.DB, playlistID, videoID)
	if err != nil {
		return err
	}
	if member {
		return ErrVideoAlreadyInPlaylist
	}
	return s.Repo.AddPlaylistVideo(ctx, s.DB, playlistID, videoID)
}

// RemoveVideo removes a video from a playlist owned by the caller.
func (s *PlaylistService) RemoveVideo(ctx context.Context, callerID, playlistID, videoID string) error {
	if _, err := s.owned(ctx, callerID, playlistID); err != nil {
		return err
	}
	err := s.Repo.RemovePlaylistVideo(ctx, s.DB, playlistID, videoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrVideoNotInPlaylist
	}
	return err
}

func (s *PlaylistService) owned(ctx context.Context, callerID, playlistID string) (*domain.Playlist, error) {
	p, err := s.Repo.GetPlaylist(ctx, s.DB, playlistID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return p, nil
}
