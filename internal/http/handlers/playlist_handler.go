// Playlist HTTP handlers.
//
// Endpoints:
//   - POST   /playlists
//   - GET    /playlists/{playlistId}
//   - PATCH  /playlists/{playlistId}   (owner only)
//   - DELETE /playlists/{playlistId}   (owner only)
//   - PATCH  /playlists/add/{videoId}/{playlistId}     (owner only)
//   - PATCH  /playlists/remove/{videoId}/{playlistId}  (owner only)
//   - GET    /playlists/user/{userId}
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/services"
)

// PlaylistService defines the playlist operations consumed by HTTP handlers.
type PlaylistService interface {
	Create(ctx context.Context, ownerID, name, description string) (*domain.Playlist, error)
	Get(ctx context.Context, playlistID string) (*services.PlaylistDetail, error)
	ListUser(ctx context.Context, userID string) ([]domain.Playlist, error)
	Update(ctx context.Context, callerID, playlistID, name, description string) (*domain.Playlist, error)
	Delete(ctx context.Context, callerID, playlistID string) error
	AddVideo(ctx context.Context, callerID, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, callerID, playlistID, videoID string) error
}

// PlaylistHandlers groups the playlist endpoints.
type PlaylistHandlers struct {
	svc PlaylistService
}

// NewPlaylistHandlers constructs the playlist endpoint group.
func NewPlaylistHandlers(svc PlaylistService) *PlaylistHandlers {
	return &PlaylistHandlers{svc: svc}
}

// PlaylistRequest is the JSON payload for creating or editing a playlist.
type PlaylistRequest struct {
	Name        string `json:"name" example:"Go talks"`
	Description string `json:"description" example:"Conference talks worth rewatching"`
}

// Create godoc
// @ID          createPlaylist
// @Summary     Create a playlist
// @Tags        Playlists
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.PlaylistRequest  true  "Name and description"
// @Success     201  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Missing name"
// @Router      /playlist [post]
func (h *PlaylistHandlers) Create(c *gin.Context) {
	var req PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}
	pl, err := h.svc.Create(c.Request.Context(), userID(c), req.Name, req.Description)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, pl, "Playlist created successfully")
}

// Get godoc
// @ID          getPlaylist
// @Summary     Get a playlist with its videos
// @Description Videos are ordered by when they were added.
// @Tags        Playlists
// @Produce     json
// @Param       playlistId  path  string  true  "Playlist ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such playlist"
// @Router      /playlist/{playlistId} [get]
func (h *PlaylistHandlers) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, detail, "Playlist fetched successfully")
}

// ListUser godoc
// @ID          listUserPlaylists
// @Summary     List a user's playlists
// @Tags        Playlists
// @Produce     json
// @Param       userId  path  string  true  "User ID"
// @Success     200  {object}  handlers.APIResponse
// @Router      /playlist/user/{userId} [get]
func (h *PlaylistHandlers) ListUser(c *gin.Context) {
	items, err := h.svc.ListUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items, "Playlists fetched successfully")
}

// Update godoc
// @ID          updatePlaylist
// @Summary     Edit a playlist's details
// @Tags        Playlists
// @Accept      json
// @Produce     json
// @Param       playlistId  path  string                    true  "Playlist ID"
// @Param       body        body  handlers.PlaylistRequest  true  "New details"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such playlist"
// @Router      /playlist/{playlistId} [patch]
func (h *PlaylistHandlers) Update(c *gin.Context) {
	var req PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		(strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Description) == "") {
		fail(c, http.StatusBadRequest, "name or description is required")
		return
	}
	pl, err := h.svc.Update(c.Request.Context(), userID(c), c.Param("playlistId"), req.Name, req.Description)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, pl, "Playlist updated successfully")
}

// Delete godoc
// @ID          deletePlaylist
// @Summary     Delete a playlist
// @Description Removes the playlist and its membership rows; the videos themselves are untouched. Owner only.
// @Tags        Playlists
// @Produce     json
// @Param       playlistId  path  string  true  "Playlist ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such playlist"
// @Router      /playlist/{playlistId} [delete]
func (h *PlaylistHandlers) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), userID(c), c.Param("playlistId")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{}, "Playlist deleted successfully")
}

// AddVideo godoc
// @ID          addPlaylistVideo
// @Summary     Add a video to a playlist
// @Tags        Playlists
// @Produce     json
// @Param       videoId     path  string  true  "Video ID"
// @Param       playlistId  path  string  true  "Playlist ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "No such playlist or video"
// @Failure     409  {object}  handlers.APIError "Already in playlist"
// @Router      /playlist/add/{videoId}/{playlistId} [patch]
func (h *PlaylistHandlers) AddVideo(c *gin.Context) {
	if err := h.svc.AddVideo(c.Request.Context(), userID(c), c.Param("playlistId"), c.Param("videoId")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{}, "Video added to playlist")
}

// RemoveVideo godoc
// @ID          removePlaylistVideo
// @Summary     Remove a video from a playlist
// @Tags        Playlists
// @Produce     json
// @Param       videoId     path  string  true  "Video ID"
// @Param       playlistId  path  string  true  "Playlist ID"
// @Success     200  {object}  handlers.APIResponse
// @Failure     403  {object}  handlers.APIError "Not the owner"
// @Failure     404  {object}  handlers.APIError "Not in playlist"
// @Router      /playlist/remove/{videoId}/{playlistId} [patch]
func (h *PlaylistHandlers) RemoveVideo(c *gin.Context) {
	if err := h.svc.RemoveVideo(c.Request.Context(), userID(c), c.Param("playlistId"), c.Param("videoId")); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{}, "Video removed from playlist")
}
