// Package services – DashboardService
//
// The dashboard is the channel owner's private view: aggregate stats plus a
// paginated listing of every upload, unpublished drafts included.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// DashboardRepo defines the repository contract required by DashboardService.
type DashboardRepo interface {
	GetChannelStats(ctx context.Context, db *gorm.DB, channelID string) (*repo.ChannelStatsView, error)
	CountChannelVideos(ctx context.Context, db *gorm.DB, channelID string) (int64, error)
	ListChannelVideosPage(ctx context.Context, db *gorm.DB, channelID string, offset, limit int) ([]repo.DashboardVideoItem, error)
}

// DashboardService provides the channel owner's dashboard aggregates.
type DashboardService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the dashboard repository used by this service.
	Repo DashboardRepo
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(db *gorm.DB, r DashboardRepo) *DashboardService {
	return &DashboardService{DB: db, Repo: r}
}

// Stats returns the aggregate block for the owner's channel.
func (s *DashboardService) Stats(ctx context.Context, channelID string) (*repo.ChannelStatsView, error) {
	return s.Repo.GetChannelStats(ctx, s.DB, channelID)
}

// Videos returns one page of the owner's uploads, newest first, including
// unpublished drafts, with pagination metadata.
func (s *DashboardService) Videos(ctx context.Context, channelID string, page, limit int) ([]repo.DashboardVideoItem, utils.PageMeta, error) {
	page, limit = utils.CoercePage(page, limit)

	total, err := s.Repo.CountChannelVideos(ctx, s.DB, channelID)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	items, err := s.Repo.ListChannelVideosPage(ctx, s.DB, channelID, utils.Offset(page, limit), limit)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return items, utils.NewPageMeta(total, page, limit), nil
}
