// Video HTTP handlers.
//
// This file exposes REST endpoints for video resources:
//   - GET    /videos                          (public list, paginated, searchable)
//   - POST   /videos                          (publish: multipart video + thumbnail)
//   - GET    /videos/{videoId}                (detail; counts a view)
//   - PATCH  /videos/{videoId}                (edit details, optional new thumbnail)
//   - DELETE /videos/{videoId}                (owner only; cascades)
//   - PATCH  /videos/toggle/publish/{videoId} (owner only)
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/services"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// VideoService defines the video lifecycle operations consumed by HTTP
// handlers.
type VideoService interface {
	Publish(ctx context.Context, ownerID string, in services.PublishInput) (*domain.Video, error)
	List(ctx context.Context, in services.ListVideosInput) ([]repo.VideoListItem, utils.PageMeta, error)
	Get(ctx context.Context, viewerID, videoID string) (*repo.VideoView, error)
	Update(ctx context.Context, callerID, videoID, title, description, thumbnailPath string) (*domain.Video, error)
	Delete(ctx context.Context, callerID, videoID string) error
	TogglePublish(ctx context.Context, callerID, videoID string) (bool, error)
}

// VideoHandlers groups the video endpoints.
type VideoHandlers struct {
	svc   VideoService
	spool spooler
}

// NewVideoHandlers constructs the video endpoint group.
func NewVideoHandlers(svc VideoService, tempDir string) *VideoHandlers {
	return &VideoHandlers{svc: svc, spool: newSpooler(tempDir)}
}

// List godoc
// @ID          listVideos
// @Summary     List published videos (paginated)
// @Description Full listing of published videos with optional title search, owner filter, and sorting by views, duration, or upload time.
// @Tags        Videos
// @Produce     json
// @Param       page      query  int     false  "Page number"     minimum(1) default(1)
// @Param       limit     query  int     false  "Items per page"  minimum(1) maximum(100) default(10)
// @Param       query     query  string  false  "Title substring filter"
// @Param       userId    query  string  false  "Only videos by this owner"
// @Param       sortBy    query  string  false  "views | duration | createdAt"
// @Param       sortType  query  string  false  "asc | desc"      default(desc)
// @Success     200  {object}  handlers.APIResponse
// @Router      /video [get]
func (h *VideoHandlers) List(c *gin.Context) {
	pg, limit := pageQuery(c)
	in := services.ListVideosInput{
		Page:     pg,
		Limit:    limit,
		Query:    strings.TrimSpace(c.Query("query")),
		OwnerID:  strings.TrimSpace(c.Query("userId")),
		SortBy:   strings.TrimSpace(c.Query("sortBy")),
		SortDesc: !strings.EqualFold(c.Query("sortType"), "asc"),
	}
	items, meta, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, paged(items, meta), "Videos fetched successfully")
}

// Publish godoc
// @ID          publishVideo
// @Summary     Publish a video
// @Description Uploads the video file and thumbnail to the media host and creates the video record. Both files are required.
// @Tags        Videos
// @Accept      multipart/form-data
// @Produce     json
// @Param       title        formData  string  true  "Title"
// @Param       description  formData  string  true  "Description"
// @Param       videoFile    formData  file    true  "Video file"
// @Param       thumbnail    formData  file    true  "Thumbnail image"
// @Success     201  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Missing field or file"
// @Router      /video [post]
func (h *VideoHandlers) Publish(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if title == "" || description == "" {
		fail(c, http.StatusBadRequest, "title and description are required")
		return
	}

	videoPath, err := h.spool.save(c, "videoFile")
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	thumbPath, err := h.spool.save(c, "thumbnail")
	if err != nil {
		discard(videoPath)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if videoPath == "" || thumbPath == "" {
		discard(videoPath, thumbPath)
		fail(c, http.StatusBadRequest, "videoFile and thumbnail are required")
		return
	}

	v, err := h.svc.Publish(c.Request.Context(), userID(c), services.PublishInput{
		Title:         title,
		Description:   description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, v, "Video published successfully")
}

// Get godoc
// @ID          getVideo
// @Summary     Get a video
// @Description Returns the video with owner, like count, and viewer flags. Each fetch increments the view counter and records watch history.
// @Tags        Videos
// @Produce     json
// @Param       videoId  path  string  true  "Video ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such video"
// @Router      /video/{videoId} [get]
func (h *VideoHandlers) Get(c *gin.Context) {
	videoID := c.Param("videoId")
	if videoID == "" {
		fail(c, http.StatusBadRequest, "videoId is required")
		return
	}
	v, err := h.svc.Get(c.Request.Context(), userID(c), videoID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, v, "Video details fetched")
}

// Update godoc
// @ID          updateVideo
// @Summary     Edit video details
// @Description Updates title/description and optionally replaces the thumbnail. Only the owner may edit.
// @Tags        Videos
// @Accept      multipart/form-data
// @Produce     json
// @Param       videoId      path      string  true   "Video ID"
// @Param       title        formData  string  false  "New title"
// @Param       description  formData  string  false  "New description"
// @Param       thumbnail    formData  file    false  "New thumbnail image"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such video"
// @Router      /video/{videoId} [patch]
func (h *VideoHandlers) Update(c *gin.Context) {
	videoID := c.Param("videoId")
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))

	thumbPath, err := h.spool.save(c, "thumbnail")
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if title == "" && description == "" && thumbPath == "" {
		fail(c, http.StatusBadRequest, "title, description or thumbnail is required")
		return
	}

	v, err := h.svc.Update(c.Request.Context(), userID(c), videoID, title, description, thumbPath)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, v, "Video updated successfully")
}

// Delete godoc
// @ID          deleteVideo
// @Summary     Delete a video
// @Description Removes the video and everything hanging off it: comments and their likes, video likes, playlist entries, and watch history. Owner only.
// @Tags        Videos
// @Produce     json
// @Param       videoId  path  string  true  "Video ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such video"
// @Router      /video/{videoId} [delete]
func (h *VideoHandlers) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), userID(c), c.Param("videoId")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

// TogglePublish godoc
// @ID          togglePublish
// @Summary     Toggle a video's publish state
// @Tags        Videos
// @Produce     json
// @Param       videoId  path  string  true  "Video ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such video"
// @Router      /video/toggle/publish/{videoId} [patch]
func (h *VideoHandlers) TogglePublish(c *gin.Context) {
	published, err := h.svc.TogglePublish(c.Request.Context(), userID(c), c.Param("videoId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"isPublished": published}, "Publish state toggled")
}
