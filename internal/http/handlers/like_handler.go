// Like HTTP handlers.
//
// Endpoints:
//   - POST /likes/toggle/v/{videoId}
//   - POST /likes/toggle/c/{commentId}
//   - POST /likes/toggle/t/{tweetId}
//   - GET  /likes/videos
//
// Toggling is idempotent per state: liking twice flips the like off again.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/repo"
)

// LikeService defines the like-toggle operations consumed by HTTP handlers.
type LikeService interface {
	ToggleVideo(ctx context.Context, actorID, videoID string) (bool, error)
	ToggleComment(ctx context.Context, actorID, commentID string) (bool, error)
	ToggleTweet(ctx context.Context, actorID, tweetID string) (bool, error)
	LikedVideos(ctx context.Context, userID string) ([]repo.LikedVideoView, error)
}

// LikeHandlers groups the like endpoints.
type LikeHandlers struct {
	svc LikeService
}

// NewLikeHandlers constructs the like endpoint group.
func NewLikeHandlers(svc LikeService) *LikeHandlers {
	return &LikeHandlers{svc: svc}
}

// ToggleVideo godoc
// @ID          toggleVideoLike
// @Summary     Toggle a like on a video
// @Tags        Likes
// @Produce     json
// @Param       videoId  path  string  true  "Video ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such video"
// @Router      /likes/toggle/v/{videoId} [post]
func (h *LikeHandlers) ToggleVideo(c *gin.Context) {
	liked, err := h.svc.ToggleVideo(c.Request.Context(), userID(c), c.Param("videoId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"isLiked": liked}, "Video like toggled")
}

// ToggleComment godoc
// @ID          toggleCommentLike
// @Summary     Toggle a like on a comment
// @Tags        Likes
// @Produce     json
// @Param       commentId  path  string  true  "Comment ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such comment"
// @Router      /likes/toggle/c/{commentId} [post]
func (h *LikeHandlers) ToggleComment(c *gin.Context) {
	liked, err := h.svc.ToggleComment(c.Request.Context(), userID(c), c.Param("commentId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"isLiked": liked}, "Comment like toggled")
}

// ToggleTweet godoc
// @ID          toggleTweetLike
// @Summary     Toggle a like on a tweet
// @Tags        Likes
// @Produce     json
// @Param       tweetId  path  string  true  "Tweet ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such tweet"
// @Router      /likes/toggle/t/{tweetId} [post]
func (h *LikeHandlers) ToggleTweet(c *gin.Context) {
	liked, err := h.svc.ToggleTweet(c.Request.Context(), userID(c), c.Param("tweetId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"isLiked": liked}, "Tweet like toggled")
}

// LikedVideos godoc
// @ID          likedVideos
// @Summary     List videos the user has liked
// @Tags        Likes
// @Produce     json
// @Success     200  {object}  handlers.APIResponse
// @Failure     401  {object}  handlers.APIError
// @Router      /likes/videos [get]
func (h *LikeHandlers) LikedVideos(c *gin.Context) {
	items, err := h.svc.LikedVideos(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items, "Liked videos fetched")
}
