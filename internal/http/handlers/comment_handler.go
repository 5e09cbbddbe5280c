// Comment HTTP handlers.
//
// Endpoints:
//   - GET    /comments/{videoId}    (list, paginated)
//   - POST   /comments/{videoId}    (add)
//   - PATCH  /comments/c/{commentId} (edit, owner only)
//   - DELETE /comments/c/{commentId} (delete, owner only; cascades likes)
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// CommentService defines the comment operations consumed by HTTP handlers.
type CommentService interface {
	Add(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error)
	List(ctx context.Context, viewerID, videoID string, page, limit int) ([]repo.CommentView, utils.PageMeta, error)
	Update(ctx context.Context, callerID, commentID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, callerID, commentID string) error
}

// CommentHandlers groups the comment endpoints.
type CommentHandlers struct {
	svc CommentService
}

// NewCommentHandlers constructs the comment endpoint group.
func NewCommentHandlers(svc CommentService) *CommentHandlers {
	return &CommentHandlers{svc: svc}
}

// CommentRequest is the JSON payload for adding or editing a comment.
type CommentRequest struct {
	Content string `json:"content" binding:"required" example:"Great video!"`
}

// List godoc
// @ID          listComments
// @Summary     List a video's comments (paginated)
// @Description Newest first, each with its owner, like count, and whether the viewer liked it.
// @Tags        Comments
// @Produce     json
// @Param       videoId  path   string  true   "Video ID"
// @Param       page     query  int     false  "Page number"     minimum(1) default(1)
// @Param       limit    query  int     false  "Items per page"  minimum(1) maximum(100) default(10)
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such video"
// @Router      /comment/{videoId} [get]
func (h *CommentHandlers) List(c *gin.Context) {
	pg, limit := pageQuery(c)
	items, meta, err := h.svc.List(c.Request.Context(), userID(c), c.Param("videoId"), pg, limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, paged(items, meta), "Comments fetched successfully")
}

// Add godoc
// @ID          addComment
// @Summary     Comment on a video
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       videoId  path  string                   true  "Video ID"
// @Param       body     body  handlers.CommentRequest  true  "Comment content"
// @Success     201  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Empty content"
// @Failure     404  {object}  handlers.APIError "No such video"
// @Router      /comment/{videoId} [post]
func (h *CommentHandlers) Add(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}
	cm, err := h.svc.Add(c.Request.Context(), userID(c), c.Param("videoId"), req.Content)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, cm, "Comment added successfully")
}

// Update godoc
// @ID          updateComment
// @Summary     Edit a comment
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Param       commentId  path  string                   true  "Comment ID"
// @Param       body       body  handlers.CommentRequest  true  "New content"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such comment"
// @Router      /comment/c/{commentId} [patch]
func (h *CommentHandlers) Update(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, "content is required")
		return
	}
	cm, err := h.svc.Update(c.Request.Context(), userID(c), c.Param("commentId"), req.Content)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, cm, "Comment updated successfully")
}

// Delete godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Description Removes the comment and any likes on it. Owner only.
// @Tags        Comments
// @Produce     json
// @Param       commentId  path  string  true  "Comment ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such comment"
// @Router      /comment/c/{commentId} [delete]
func (h *CommentHandlers) Delete(c *gin.Context) {
	commentID := c.Param("commentId")
	if err := h.svc.Delete(c.Request.Context(), userID(c), commentID); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"commentId": commentID}, "Comment deleted successfully")
}
