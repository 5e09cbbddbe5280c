// Package services – VideoService
//
// This file implements the VideoService: publishing (dual media upload),
// public listing with search/sort, the aggregated single-video page with its
// view-count and watch-history side effects, owner-gated mutations, and the
// delete cascade across comments, likes, playlist entries, and history.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/media"
	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// VideoRepo defines the repository contract required by VideoService.
type VideoRepo interface {
	CreateVideo(ctx context.Context, db *gorm.DB, v *domain.Video) (*domain.Video, error)
	GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error)
	CountVideos(ctx context.Context, db *gorm.DB, f repo.VideoFilter) (int64, error)
	ListVideosPage(ctx context.Context, db *gorm.DB, f repo.VideoFilter, offset, limit int) ([]repo.VideoListItem, error)
	GetVideoView(ctx context.Context, db *gorm.DB, viewerID, videoID string) (*repo.VideoView, error)
	IncrementViews(ctx context.Context, db *gorm.DB, videoID string) error
	UpsertWatchHistory(ctx context.Context, db *gorm.DB, userID, videoID string) error
	UpdateVideoDetails(ctx context.Context, db *gorm.DB, videoID, title, description string, thumb domain.Image) error
	SetPublished(ctx context.Context, db *gorm.DB, videoID string, published bool) error
	DeleteVideo(ctx context.Context, db *gorm.DB, videoID string) error

	// Cascade steps for delete.
	DeleteCommentLikesByVideo(ctx context.Context, db *gorm.DB, videoID string) error
	DeleteCommentsByVideo(ctx context.Context, db *gorm.DB, videoID string) error
	DeleteLikesFor(ctx context.Context, db *gorm.DB, target repo.LikeTarget, targetID string) error
	RemoveVideoFromAllPlaylists(ctx context.Context, db *gorm.DB, videoID string) error
	DeleteWatchHistoryByVideo(ctx context.Context, db *gorm.DB, videoID string) error
}

// PublishInput carries a video publish request: metadata plus the local
// spool paths of the video file and thumbnail (both required).
type PublishInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// ListVideosInput carries the public listing query.
type ListVideosInput struct {
	Page     int
	Limit    int
	Query    string
	OwnerID  string
	SortBy   string
	SortDesc bool
}

// VideoService provides video publishing, discovery, and owner mutations.
type VideoService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the video repository used by this service.
	Repo VideoRepo
	// Media hosts video files and thumbnails.
	Media media.Host
}

// NewVideoService constructs a VideoService.
func NewVideoService(db *gorm.DB, r VideoRepo, host media.Host) *VideoService {
	return &VideoService{DB: db, Repo: r, Media: host}
}

// Publish uploads the video file and thumbnail to the media host and creates
// the video row, unpublished by default. The duration reported by the host
// for the video file is stored.
func (s *VideoService) Publish(ctx context.Context, ownerID string, in PublishInput) (*domain.Video, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" || in.VideoPath == "" || in.ThumbnailPath == "" {
		return nil, ErrMissingFields
	}

	videoAsset, err := s.Media.Upload(ctx, in.VideoPath)
	if err != nil {
		return nil, err
	}
	thumbAsset, err := s.Media.Upload(ctx, in.ThumbnailPath)
	if err != nil {
		// The video asset is orphaned; try to reclaim it.
		if derr := s.Media.Destroy(ctx, videoAsset.PublicID, "video"); derr != nil {
			log.Warn().Err(derr).Str("public_id", videoAsset.PublicID).Msg("destroy orphaned video failed")
		}
		return nil, err
	}

	return s.Repo.CreateVideo(ctx, s.DB, &domain.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Duration:    videoAsset.Duration,
		VideoFile:   domain.Image{URL: videoAsset.URL, PublicID: videoAsset.PublicID},
		Thumbnail:   domain.Image{URL: thumbAsset.URL, PublicID: thumbAsset.PublicID},
	})
}

// List returns one page of the published-video listing with pagination
// metadata. Query is a free-text match against title and description; sort
// columns outside the whitelist fall back to upload time.
func (s *VideoService) List(ctx context.Context, in ListVideosInput) ([]repo.VideoListItem, utils.PageMeta, error) {
	page, limit := utils.CoercePage(in.Page, in.Limit)
	f := repo.VideoFilter{
		Query:    strings.TrimSpace(in.Query),
		OwnerID:  in.OwnerID,
		SortBy:   in.SortBy,
		SortDesc: in.SortDesc,
	}

	total, err := s.Repo.CountVideos(ctx, s.DB, f)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	items, err := s.Repo.ListVideosPage(ctx, s.DB, f, utils.Offset(page, limit), limit)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return items, utils.NewPageMeta(total, page, limit), nil
}

// Get returns the aggregated single-video page for the viewer and applies
// the read side effects: the view counter is incremented and the video is
// recorded in the viewer's watch history.
func (s *VideoService) Get(ctx context.Context, viewerID, videoID string) (*repo.VideoView, error) {
	view, err := s.Repo.GetVideoView(ctx, s.DB, viewerID, videoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.IncrementViews(ctx, s.DB, videoID); err != nil {
		log.Warn().Err(err).Str("video_id", videoID).Msg("increment views failed")
	}
	if err := s.Repo.UpsertWatchHistory(ctx, s.DB, viewerID, videoID); err != nil {
		log.Warn().Err(err).Str("video_id", videoID).Msg("record watch history failed")
	}
	return view, nil
}

// Update sets the title, description, and optionally a new thumbnail
// (replacing the hosted asset) on a video owned by the caller.
func (s *VideoService) Update(ctx context.Context, callerID, videoID, title, description, thumbnailPath string) (*domain.Video, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, ErrMissingFields
	}

	v, err := s.owned(ctx, callerID, videoID)
	if err != nil {
		return nil, err
	}

	thumb := v.Thumbnail
	if thumbnailPath != "" {
		asset, err := s.Media.Upload(ctx, thumbnailPath)
		if err != nil {
			return nil, err
		}
		thumb = domain.Image{URL: asset.URL, PublicID: asset.PublicID}
	}

	if err := s.Repo.UpdateVideoDetails(ctx, s.DB, videoID, title, description, thumb); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if thumbnailPath != "" && v.Thumbnail.PublicID != "" {
		if err := s.Media.Destroy(ctx, v.Thumbnail.PublicID, "image"); err != nil {
			log.Warn().Err(err).Str("public_id", v.Thumbnail.PublicID).Msg("destroy replaced thumbnail failed")
		}
	}

	updated, err := s.Repo.GetVideo(ctx, s.DB, videoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	return updated, err
}

// Delete removes a video owned by the caller together with its dependents:
// comments, like edges on the video and its comments, playlist entries, and
// watch history rows. The hosted media assets are destroyed best-effort
// afterwards. The steps run sequentially without a wrapping transaction; a
// mid-cascade failure can leave dependents already removed, which is safe
// because every listing joins through the video row deleted last.
func (s *VideoService) Delete(ctx context.Context, callerID, videoID string) error {
	v, err := s.owned(ctx, callerID, videoID)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteCommentLikesByVideo(ctx, s.DB, videoID); err != nil {
		return err
	}
	if err := s.Repo.DeleteCommentsByVideo(ctx, s.DB, videoID); err != nil {
		return err
	}
	if err := s.Repo.DeleteLikesFor(ctx, s.DB, repo.LikeVideo, videoID); err != nil {
		return err
	}
	if err := s.Repo.RemoveVideoFromAllPlaylists(ctx, s.DB, videoID); err != nil {
		return err
	}
	if err := s.Repo.DeleteWatchHistoryByVideo(ctx, s.DB, videoID); err != nil {
		return err
	}
	if err := s.Repo.DeleteVideo(ctx, s.DB, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	for _, asset := range []struct{ publicID, kind string }{
		{v.VideoFile.PublicID, "video"},
		{v.Thumbnail.PublicID, "image"},
	} {
		if asset.publicID == "" {
			continue
		}
		if err := s.Media.Destroy(ctx, asset.publicID, asset.kind); err != nil {
			log.Warn().Err(err).Str("public_id", asset.publicID).Msg("destroy video asset failed")
		}
	}
	return nil
}

// TogglePublish flips the publish state of a video owned by the caller and
// returns the new state.
func (s *VideoService) TogglePublish(ctx context.Context, callerID, videoID string) (bool, error) {
	v, err := s.owned(ctx, callerID, videoID)
	if err != nil {
		return false, err
	}
	next := !v.IsPublished
	if err := s.Repo.SetPublished(ctx, s.DB, videoID, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrVideoNotFound
		}
		return false, err
	}
	return next, nil
}

// owned loads the video and enforces that callerID owns it.
func (s *VideoService) owned(ctx context.Context, callerID, videoID string) (*domain.Video, error) {
	v, err := s.Repo.GetVideo(ctx, s.DB, videoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	if v.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return v, nil
}
