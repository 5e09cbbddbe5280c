// Account and session HTTP handlers.
//
// This file exposes REST endpoints for registration, login, session refresh,
// and account management:
//   - POST   /users/register         (multipart: details + avatar/cover)
//   - POST   /users/login
//   - POST   /users/logout           (auth)
//   - POST   /users/refresh-token
//   - POST   /users/change-password  (auth)
//   - GET    /users/current-user     (auth)
//   - PATCH  /users/update-account   (auth)
//   - PATCH  /users/avatar           (auth, multipart)
//   - PATCH  /users/cover-image      (auth, multipart)
//   - GET    /users/c/{username}     (auth)
//   - GET    /users/history          (auth, paginated)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into the response envelope. Session tokens
// travel both in the JSON body and as HttpOnly cookies.
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

// AuthService defines the session lifecycle operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*domain.User, *services.SessionPair, error)
	Refresh(ctx context.Context, rawToken string) (*domain.User, *services.SessionPair, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}

// UserService defines account and channel profile operations consumed by
// HTTP handlers.
type UserService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error)
	ChannelProfile(ctx context.Context, viewerID, username string) (*repo.ChannelProfileView, error)
	WatchHistory(ctx context.Context, userID string, page, limit int) ([]repo.WatchHistoryItem, utils.PageMeta, error)
}

// UserHandlers groups the account and session endpoints.
type UserHandlers struct {
	authSvc AuthService
	userSvc UserService
	spool   spooler
	cookies CookieOptions
}

// NewUserHandlers constructs the account endpoint group. tempDir is the
// multipart spool directory; cookies carries the session cookie attributes.
func NewUserHandlers(authSvc AuthService, userSvc UserService, tempDir string, cookies CookieOptions) *UserHandlers {
	return &UserHandlers{
		authSvc: authSvc,
		userSvc: userSvc,
		spool:   newSpooler(tempDir),
		cookies: cookies,
	}
}

//
// DTOs
//

// LoginRequest is the JSON payload for logging in. Either username or email
// identifies the account; exactly one is required.
type LoginRequest struct {
	Username string `json:"username" example:"jane"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"hunter2!"`
}

// ChangePasswordRequest is the JSON payload for rotating a password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// UpdateAccountRequest is the JSON payload for updating profile details.
type UpdateAccountRequest struct {
	FullName string `json:"fullName" example:"Jane Doe"`
	Email    string `json:"email" example:"jane@example.com"`
}

// SessionResponse is returned by login and refresh: the user plus the token
// pair (also set as cookies).
type SessionResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

//
// Handlers
//

// Register godoc
// @ID          registerUser
// @Summary     Register a new account
// @Description Creates an account from multipart form fields plus an avatar (required) and cover image (optional).
// @Tags        Users
// @Accept      multipart/form-data
// @Produce     json
// @Param       fullName   formData  string  true   "Display name"
// @Param       email      formData  string  true   "Email address"
// @Param       username   formData  string  true   "Unique handle"
// @Param       password   formData  string  true   "Password"
// @Param       avatar     formData  file    true   "Avatar image"
// @Param       coverImage formData  file    false  "Cover image"
// @Success     201  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Missing field or avatar"
// @Failure     409  {object}  handlers.APIError "Username or email taken"
// @Router      /users/register [post]
func (h *UserHandlers) Register(c *gin.Context) {
	in := services.RegisterInput{
		FullName: strings.TrimSpace(c.PostForm("fullName")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
	}
	if in.FullName == "" || in.Email == "" || in.Username == "" || in.Password == "" {
		fail(c, http.StatusBadRequest, "fullName, email, username and password are required")
		return
	}

	avatarPath, err := h.spool.save(c, "avatar")
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if avatarPath == "" {
		fail(c, http.StatusBadRequest, "avatar file is required")
		return
	}
	coverPath, err := h.spool.save(c, "coverImage")
	if err != nil {
		discard(avatarPath)
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	in.AvatarPath = avatarPath
	in.CoverPath = coverPath

	u, err := h.authSvc.Register(c.Request.Context(), in)
	if err != nil {
		// Rejections before the upload step (duplicate handle, blank field)
		// leave the spooled files behind; remove them here. discard tolerates
		// paths the upload path already cleaned up.
		discard(avatarPath, coverPath)
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, u, "User registered successfully")
}

// Login godoc
// @ID          loginUser
// @Summary     Log in
// @Description Verifies credentials and issues an access/refresh token pair, returned in the body and as HttpOnly cookies.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
// @Success     200  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Missing identifier"
// @Failure     401  {object}  handlers.APIError "Bad credentials"
// @Router      /users/login [post]
func (h *UserHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "password is required")
		return
	}
	identifier := strings.TrimSpace(req.Username)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Email)
	}
	if identifier == "" {
		fail(c, http.StatusBadRequest, "username or email is required")
		return
	}

	u, pair, err := h.authSvc.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	setSessionCookies(c, pair, h.cookies)
	ok(c, http.StatusOK, SessionResponse{
		User:         u,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout godoc
// @ID          logoutUser
// @Summary     Log out
// @Description Revokes the persisted refresh token and clears the session cookies.
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.APIResponse
// @Failure     401  {object}  handlers.APIError
// @Router      /users/logout [post]
func (h *UserHandlers) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), userID(c)); err != nil {
		failErr(c, err)
		return
	}
	clearSessionCookies(c, h.cookies)
	ok(c, http.StatusOK, gin.H{}, "User logged out")
}

// RefreshToken godoc
// @ID          refreshToken
// @Summary     Rotate the session
// @Description Exchanges a valid refresh token (cookie or JSON body) for a fresh pair. A token that does not exactly match the persisted one is rejected.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Success     200  {object}  handlers.APIResponse
// @Failure     401  {object}  handlers.APIError "Expired or replayed token"
// @Router      /users/refresh-token [post]
func (h *UserHandlers) RefreshToken(c *gin.Context) {
	raw, _ := c.Cookie("refreshToken")
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			raw = body.RefreshToken
		}
	}
	if raw == "" {
		fail(c, http.StatusUnauthorized, "Unauthorized request")
		return
	}

	u, pair, err := h.authSvc.Refresh(c.Request.Context(), raw)
	if err != nil {
		failErr(c, err)
		return
	}
	setSessionCookies(c, pair, h.cookies)
	ok(c, http.StatusOK, SessionResponse{
		User:         u,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword godoc
// @ID          changePassword
// @Summary     Change password
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ChangePasswordRequest  true  "Old and new password"
// @Success     200  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError
// @Failure     401  {object}  handlers.APIError "Old password wrong"
// @Router      /users/change-password [post]
func (h *UserHandlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		fail(c, http.StatusBadRequest, "oldPassword and newPassword are required")
		return
	}
	if err := h.authSvc.ChangePassword(c.Request.Context(), userID(c), req.OldPassword, req.NewPassword); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

// CurrentUser godoc
// @ID          currentUser
// @Summary     Get the authenticated user
// @Tags        Users
// @Produce     json
// @Success     200  {object}  handlers.APIResponse
// @Failure     401  {object}  handlers.APIError
// @Router      /users/current-user [get]
func (h *UserHandlers) CurrentUser(c *gin.Context) {
	u, err := h.userSvc.Get(c.Request.Context(), userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u, "Current user fetched")
}

// UpdateAccount godoc
// @ID          updateAccount
// @Summary     Update profile details
// @Description Updates full name and/or email. An email already used by another account is rejected.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.UpdateAccountRequest  true  "New details"
// @Success     200  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError
// @Failure     409  {object}  handlers.APIError "Email taken"
// @Router      /users/update-account [patch]
func (h *UserHandlers) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if fullName == "" && email == "" {
		fail(c, http.StatusBadRequest, "fullName or email is required")
		return
	}

	u, err := h.userSvc.UpdateAccount(c.Request.Context(), userID(c), fullName, email)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u, "Account details updated")
}

// UpdateAvatar godoc
// @ID          updateAvatar
// @Summary     Replace the avatar image
// @Tags        Users
// @Accept      multipart/form-data
// @Produce     json
// @Param       avatar  formData  file  true  "New avatar image"
// @Success     200  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Missing file"
// @Router      /users/avatar [patch]
func (h *UserHandlers) UpdateAvatar(c *gin.Context) {
	h.replaceImage(c, "avatar", h.userSvc.UpdateAvatar, "Avatar updated")
}

// UpdateCoverImage godoc
// @ID          updateCoverImage
// @Summary     Replace the cover image
// @Tags        Users
// @Accept      multipart/form-data
// @Produce     json
// @Param       coverImage  formData  file  true  "New cover image"
// @Success     200  {object}  handlers.APIResponse
// @Failure     400  {object}  handlers.APIError "Missing file"
// @Router      /users/cover-image [patch]
func (h *UserHandlers) UpdateCoverImage(c *gin.Context) {
	h.replaceImage(c, "coverImage", h.userSvc.UpdateCoverImage, "Cover image updated")
}

func (h *UserHandlers) replaceImage(
	c *gin.Context,
	fieldName string,
	update func(ctx context.Context, userID, localPath string) (*domain.User, error),
	message string,
) {
	path, err := h.spool.save(c, fieldName)
	if err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	if path == "" {
		fail(c, http.StatusBadRequest, fieldName+" file is required")
		return
	}
	u, err := update(c.Request.Context(), userID(c), path)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u, message)
}

// ChannelProfile godoc
// @ID          channelProfile
// @Summary     Get a channel profile
// @Description Returns the public channel profile for a username, including subscriber counts and whether the viewer is subscribed.
// @Tags        Users
// @Produce     json
// @Param       username  path  string  true  "Channel username"
// @Success     200  {object}  handlers.APIResponse
// @Failure     404  {object}  handlers.APIError "No such channel"
// @Router      /users/c/{username} [get]
func (h *UserHandlers) ChannelProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		fail(c, http.StatusBadRequest, "username is required")
		return
	}
	profile, err := h.userSvc.ChannelProfile(c.Request.Context(), userID(c), username)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, profile, "Channel profile fetched")
}

// WatchHistory godoc
// @ID          watchHistory
// @Summary     List watch history (paginated)
// @Description Returns the viewer's watch history, most recently watched first.
// @Tags        Users
// @Produce     json
// @Param       page   query  int  false  "Page number"     minimum(1) default(1)
// @Param       limit  query  int  false  "Items per page"  minimum(1) maximum(100) default(10)
// @Success     200  {object}  handlers.APIResponse
// @Failure     401  {object}  handlers.APIError
// @Router      /users/history [get]
func (h *UserHandlers) WatchHistory(c *gin.Context) {
	pg, limit := pageQuery(c)
	items, meta, err := h.userSvc.WatchHistory(c.Request.Context(), userID(c), pg, limit)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, paged(items, meta), "Watch history fetched")
}
