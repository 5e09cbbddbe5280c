package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/repo"
)

// ----- Fake repo -----

type fakeDashboardRepo struct {
	stats *repo.ChannelStatsView

	countTotal int64
	pageItems  []repo.DashboardVideoItem
	pageOffset int
	pageLimit  int
}

func (r *fakeDashboardRepo) GetChannelStats(ctx context.Context, db *gorm.DB, channelID string) (*repo.ChannelStatsView, error) {
	return r.stats, nil
}

func (r *fakeDashboardRepo) CountChannelVideos(ctx context.Context, db *gorm.DB, channelID string) (int64, error) {
	return r.countTotal, nil
}

func (r *fakeDashboardRepo) ListChannelVideosPage(ctx context.Context, db *gorm.DB, channelID string, offset, limit int) ([]repo.DashboardVideoItem, error) {
	r.pageOffset, r.pageLimit = offset, limit
	return r.pageItems, nil
}

// ----- Tests -----

func TestDashboardStats(t *testing.T) {
	fr := &fakeDashboardRepo{stats: &repo.ChannelStatsView{TotalVideos: 4, TotalViews: 100, TotalSubscribers: 7, TotalLikes: 12}}
	svc := NewDashboardService(nil, fr)

	stats, err := svc.Stats(context.Background(), "channel")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVideos != 4 || stats.TotalLikes != 12 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestDashboardVideos_Pagination(t *testing.T) {
	fr := &fakeDashboardRepo{
		countTotal: 21,
		pageItems:  []repo.DashboardVideoItem{{ID: "v1", IsPublished: false}},
	}
	svc := NewDashboardService(nil, fr)

	items, meta, err := svc.Videos(context.Background(), "channel", 3, 10)
	if err != nil || len(items) != 1 {
		t.Fatalf("Videos: items=%v err=%v", items, err)
	}
	if fr.pageOffset != 20 || fr.pageLimit != 10 {
		t.Fatalf("unexpected window: offset=%d limit=%d", fr.pageOffset, fr.pageLimit)
	}
	if meta.TotalPages != 3 || meta.HasNextPage || !meta.HasPrevPage {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}
