// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Video
// model, including the filtered/joined listing and single-video projection
// that back the public video pages.
//
// The listing queries follow a fixed stage order: free-text filter (only when
// a query string is supplied) → equality filters (owner) → visibility filter
// (is_published) → owner join and derived fields → sort → projection. The
// count query applies the same filters without sort/limit so pagination
// metadata and page contents can never disagree.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// VideoFilter carries the optional filters of the public video listing.
type VideoFilter struct {
	Query    string // free-text over title/description
	OwnerID  string // restrict to one channel
	SortBy   string // views|created_at|duration (default created_at)
	SortDesc bool
}

// sortColumn whitelists the sortable columns; anything else falls back to
// created_at so raw client input can never reach the ORDER BY clause.
func (f VideoFilter) sortColumn() string {
	switch f.SortBy {
	case "views", "duration", "created_at":
		return f.SortBy
	default:
		return "created_at"
	}
}

func (f VideoFilter) order() string {
	dir := "DESC"
	if !f.SortDesc && f.SortBy != "" {
		dir = "ASC"
	}
	return "videos." + f.sortColumn() + " " + dir
}

// applyVideoFilters composes the shared filter stages of the listing and its
// count query.
func applyVideoFilters(q *gorm.DB, f VideoFilter) *gorm.DB {
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("videos.title LIKE ? OR videos.description LIKE ?", like, like)
	}
	if f.OwnerID != "" {
		q = q.Where("videos.owner_id = ?", f.OwnerID)
	}
	return q.Where("videos.is_published = ?", true)
}

// CreateVideo inserts a new video row. ID and CreatedAt are assigned here;
// videos start unpublished.
func CreateVideo(ctx context.Context, db *gorm.DB, v *domain.Video) (*domain.Video, error) {
	v.ID = uuid.NewString()
	v.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// GetVideo fetches a raw video row by id, or ErrNotFound. Used by ownership
// gates and internal checks; the public page uses GetVideoView.
func GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error) {
	var v domain.Video
	if err := db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// CountVideos returns the number of rows matching the filter (pre-sort,
// pre-limit), for pagination metadata.
func CountVideos(ctx context.Context, db *gorm.DB, f VideoFilter) (int64, error) {
	var n int64
	err := applyVideoFilters(db.WithContext(ctx).Model(&domain.Video{}), f).
		Count(&n).Error
	return n, err
}

// ListVideosPage returns one page of published videos with the owner
// projection joined in.
func ListVideosPage(ctx context.Context, db *gorm.DB, f VideoFilter, offset, limit int) ([]VideoListItem, error) {
	var out []VideoListItem
	err := applyVideoFilters(db.WithContext(ctx).Model(&domain.Video{}), f).
		Select(`videos.id, videos.title, videos.description, videos.thumb_url,
			videos.duration, videos.views, videos.created_at,
			owners.id AS owner_id, owners.username AS owner_username,
			owners.full_name AS owner_full_name, owners.avatar_url AS owner_avatar_url`).
		Joins("JOIN users owners ON owners.id = videos.owner_id").
		Order(f.order()).
		Offset(offset).
		Limit(limit).
		Scan(&out).Error
	if out == nil {
		out = []VideoListItem{}
	}
	return out, err
}

// GetVideoView returns the single-video projection for the viewer: the video
// fields plus likes count, the viewer's like flag, and the owner block with
// subscriber count and the viewer's subscription flag. ErrNotFound when the
// id does not resolve.
func GetVideoView(ctx context.Context, db *gorm.DB, viewerID, videoID string) (*VideoView, error) {
	var out VideoView
	err := db.WithContext(ctx).
		Model(&domain.Video{}).
		Select(`videos.id, videos.video_url, videos.title, videos.description,
			videos.duration, videos.views, videos.created_at,
			(SELECT COUNT(*) FROM likes l WHERE l.video_id = videos.id) AS likes_count,
			EXISTS(SELECT 1 FROM likes l WHERE l.video_id = videos.id AND l.liked_by_id = ?) AS is_liked,
			owners.id AS owner_id, owners.username AS owner_username,
			owners.full_name AS owner_full_name, owners.avatar_url AS owner_avatar_url,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = owners.id) AS subscribers_count,
			EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = owners.id AND s.subscriber_id = ?) AS is_subscribed`,
			viewerID, viewerID).
		Joins("JOIN users owners ON owners.id = videos.owner_id").
		Where("videos.id = ?", videoID).
		Take(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// IncrementViews bumps the view counter with a single atomic UPDATE.
func IncrementViews(ctx context.Context, db *gorm.DB, videoID string) error {
	return db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// UpdateVideoDetails sets title, description, and the replacement thumbnail
// in one atomic update. Returns ErrNotFound when no row matched.
func UpdateVideoDetails(ctx context.Context, db *gorm.DB, videoID, title, description string, thumb domain.Image) error {
	res := db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", videoID).
		Updates(map[string]any{
			"title":           title,
			"description":     description,
			"thumb_url":       thumb.URL,
			"thumb_public_id": thumb.PublicID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPublished flips the publish flag to the given value.
func SetPublished(ctx context.Context, db *gorm.DB, videoID string, published bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", videoID).
		Update("is_published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteVideo removes the video row. Dependent rows (comments, likes,
// playlist entries, history) are removed by the service's cascade sequence.
func DeleteVideo(ctx context.Context, db *gorm.DB, videoID string) error {
	res := db.WithContext(ctx).Delete(&domain.Video{}, "id = ?", videoID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
