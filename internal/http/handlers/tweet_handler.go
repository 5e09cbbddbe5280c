// Tweet HTTP handlers.
//
// Endpoints:
//   - POST   /tweets
//   - GET    /tweets/user/{userId}
//   - PATCH  /tweets/{tweetId}  (owner only)
//   - DELETE /tweets/{tweetId}  (owner only; cascades likes)
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
)

// TweetService defines the tweet operations consumed by HTTP handlers.
type TweetService interface {
	Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error)
	ListUser(ctx context.Context, viewerID, userID string) ([]repo.TweetView, error)
	Update(ctx context.Context, callerID, tweetID, content string) (*domain.Tweet, error)
	Delete(ctx context.Context, callerID, tweetID string) error
}

// TweetHandlers groups the tweet endpoints.
type TweetHandlers struct {
	svc TweetService
}

// NewTweetHandlers constructs the tweet endpoint group.
func NewTweetHandlers(svc TweetService) *TweetHandlers {
	return &TweetHandlers{svc: svc}
}

// TweetRequest is the JSON payload for creating or editing a tweet.
type TweetRequest struct {
	Content string `json:"content" binding:"required" example:"Shipping something new this week"`
}

// Create godoc
// @ID          createTweet
// @Summary     Post a tweet
// @Tags        Tweets
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.TweetRequest  true  "Tweet content"
// @Success     201  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Empty content"
// @Router      /tweet [post]
func (h *TweetHandlers) Create(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}
	tw, err := h.svc.Create(c.Request.Context(), userID(c), req.Content)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, tw, "Tweet created successfully")
}

// ListUser godoc
// @ID          listUserTweets
// @Summary     List a user's tweets
// @Description Newest first, each with its like count and whether the viewer liked it.
// @Tags        Tweets
// @Produce     json
// @Param       userId  path  string  true  "User ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such user"
// @Router      /tweet/user/{userId} [get]
func (h *TweetHandlers) ListUser(c *gin.Context) {
	items, err := h.svc.ListUser(c.Request.Context(), userID(c), c.Param("userId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items, "Tweets fetched successfully")
}

// Update godoc
// @ID          updateTweet
// @Summary     Edit a tweet
// @Tags        Tweets
// @Accept      json
// @Produce     json
// @Param       tweetId  path  string                 true  "Tweet ID"
// @Param       body     body  handlers.TweetRequest  true  "New content"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such tweet"
// @Router      /tweet/{tweetId} [patch]
func (h *TweetHandlers) Update(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}
	tw, err := h.svc.Update(c.Request.Context(), userID(c), c.Param("tweetId"), req.Content)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, tw, "Tweet updated successfully")
}

// Delete godoc
// @ID          deleteTweet
// @Summary     Delete a tweet
// @Description Removes the tweet and any likes on it. Owner only.
// @Tags        Tweets
// @Produce     json
// @Param       tweetId  path  string  true  "Tweet ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such tweet"
// @Router      /tweet/{tweetId} [delete]
func (h *TweetHandlers) Delete(c *gin.Context) {
	tweetID := c.Param("tweetId")
	if err := h.svc.Delete(c.Request.Context(), userID(c), tweetID); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"tweetId": tweetID}, "Tweet deleted successfully")
}
