package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// GetChannelStats computes the aggregate block of a channel owner's
// dashboard: video count, summed views, subscriber count and the total
// number of likes received across the channel's videos.
func GetChannelStats(ctx context.Context, db *gorm.DB, channelID string) (*ChannelStatsView, error) {
	var stats ChannelStatsView

	row := db.WithContext(ctx).
		Model(&domain.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", channelID).
		Row()
	if err := row.Scan(&stats.TotalVideos, &stats.TotalViews); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&stats.TotalSubscribers).Error; err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("video_id IN (?)", db.Model(&domain.Video{}).
			Select("id").
			Where("owner_id = ?", channelID)).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// CountChannelVideos counts every video owned by channelID, published or not.
func CountChannelVideos(ctx context.Context, db *gorm.DB, channelID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("owner_id = ?", channelID).
		Count(&n).Error
	return n, err
}

// ListChannelVideosPage returns one page of the owner's dashboard video
// listing, newest first. Unlike the public listings it includes
// unpublished videos and carries a per-video like count.
func ListChannelVideosPage(ctx context.Context, db *gorm.DB, channelID string, offset, limit int) ([]DashboardVideoItem, error) {
	likeCount := db.Model(&domain.Like{}).
		Select("COUNT(*)").
		Where("likes.video_id = videos.id")

	var out []DashboardVideoItem
	err := db.WithContext(ctx).
		Model(&domain.Video{}).
		Select("videos.id, videos.title, videos.thumb_url, videos.views, videos.is_published, videos.created_at, (?) AS likes_count", likeCount).
		Where("videos.owner_id = ?", channelID).
		Order("videos.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&out).Error
	if out == nil {
		out = []DashboardVideoItem{}
	}
	return out, err
}
