// Creator dashboard HTTP handlers.
//
// Endpoints:
//   - GET /dashboard/stats   (channel totals)
//   - GET /dashboard/videos  (the channel's own videos, published or not)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// DashboardService defines the creator dashboard queries consumed by HTTP
// handlers.
type DashboardService interface {
	Stats(ctx context.Context, channelID string) (*repo.ChannelStatsView, error)
	Videos(ctx context.Context, channelID string, page, limit int) ([]repo.DashboardVideoItem, utils.PageMeta, error)
}

// DashboardHandlers groups the dashboard endpoints.
type DashboardHandlers struct {
	svc DashboardService
}

// NewDashboardHandlers constructs the dashboard endpoint group.
func NewDashboardHandlers(svc DashboardService) *DashboardHandlers {
	return &DashboardHandlers{svc: svc}
}

// Stats godoc
// @ID          channelStats
// @Summary     Get channel totals
// @Description Total videos, views, subscribers, and likes for the authenticated user's channel.
// @Tags        Dashboard
// @Produce     json
// @Success     200  {object}  handlers.APIResponse
// @Failure     401  {object}  handlers.APIError
// @Router      /dashboard/stats [get]
func (h *DashboardHandlers) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, stats, "Channel stats fetched")
}

// Videos godoc
// @ID          channelVideos
// @Summary     List the channel's videos (paginated)
// @Description All of the authenticated user's videos, including unpublished ones, newest first with like counts.
// @Tags        Dashboard
// @Produce     json
// @Param       page   query  int  false  "Page number"     minimum(1) default(1)
// @Param       limit  query  int  false  "Items per page"  minimum(1) maximum(100) default(10)
// @Success     200  {object}  handlers.APIResponse
// @Failure     401  {object}  handlers.APIError
// @Router      /dashboard/videos [get]
func (h *DashboardHandlers) Videos(c *gin.Context) {
	pg, limit := pageQuery(c)
	items, meta, err := h.svc.Videos(c.Request.Context(), userID(c), pg, limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, paged(items, meta), "Channel videos fetched")
}
