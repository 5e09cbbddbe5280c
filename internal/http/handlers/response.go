// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints.
// Every response, success or failure, is wrapped in the same JSON envelope so
// clients can branch on a single shape:
//
// Success:
//
//	HTTP/1.1 200 OK
//	{ "statusCode": 200, "data": {...}, "message": "OK", "success": true }
//
// Failure:
//
//	HTTP/1.1 404 Not Found
//	{ "statusCode": 404, "data": null, "message": "Video not found", "success": false, "errors": [] }
//
// Conventions:
//   - fail() centralizes error mapping and formatting; 5xx responses are
//     logged with request context, and internal details never reach clients.
//   - ok() writes the success envelope; paginated lists wrap their rows in
//     a "docs" array alongside the page metadata.
//   - Session cookies (accessToken / refreshToken) are set and cleared only
//     through the helpers here so attributes stay consistent.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/auth"
	"github.com/streamhub/go-video-backend/internal/http/middleware"
	"github.com/streamhub/go-video-backend/internal/services"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// APIResponse is the success envelope returned by all endpoints.
type APIResponse struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Data       any    `json:"data"`
	Message    string `json:"message" example:"OK"`
	Success    bool   `json:"success" example:"true"`
}

// APIError is the failure envelope returned by all endpoints. Data is always
// null and Errors is always present (empty when there is nothing itemized).
type APIError struct {
	StatusCode int      `json:"statusCode" example:"404"`
	Data       any      `json:"data"`
	Message    string   `json:"message" example:"Video not found"`
	Success    bool     `json:"success" example:"false"`
	Errors     []string `json:"errors"`
}

// ok writes a success envelope with the given status, payload, and message.
func ok(c *gin.Context, status int, data any, message string) {
	c.JSON(status, APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// fail aborts the request with the error envelope. Server errors (>=500) are
// logged with the request-scoped logger; the client only ever sees the
// generic message.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}
	if status == http.StatusInternalServerError {
		msg = "Something went wrong, please try again"
	}
	c.AbortWithStatusJSON(status, APIError{
		StatusCode: status,
		Data:       nil,
		Message:    msg,
		Success:    false,
		Errors:     []string{},
	})
}

// Fail is the exported variant of fail(), used by router-level fallbacks
// (NoRoute/NoMethod) to keep the envelope uniform.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// failErr translates a service error into the error envelope. Known sentinel
// errors map to stable status codes; anything unrecognized is treated as an
// internal failure and logged.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrSelfSubscribe):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrSessionExpired),
		errors.Is(err, auth.ErrNoToken),
		errors.Is(err, auth.ErrInvalidToken):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrVideoNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrTweetNotFound),
		errors.Is(err, services.ErrPlaylistNotFound),
		errors.Is(err, services.ErrChannelNotFound),
		errors.Is(err, services.ErrVideoNotInPlaylist):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrVideoAlreadyInPlaylist):
		fail(c, http.StatusConflict, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

// page wraps a result page in the "docs" shape expected by list consumers.
type page struct {
	Docs any `json:"docs"`
	utils.PageMeta
}

// paged builds the data payload for a paginated listing.
func paged(docs any, meta utils.PageMeta) page {
	return page{Docs: docs, PageMeta: meta}
}

// CookieOptions carries the attributes applied to the session cookies.
// Secure comes from configuration so local HTTP development still works;
// MaxAge values derive from the configured token lifetimes.
type CookieOptions struct {
	Secure        bool
	AccessMaxAge  int // seconds
	RefreshMaxAge int // seconds
}

// setSessionCookies attaches the access/refresh pair as HttpOnly cookies.
func setSessionCookies(c *gin.Context, pair *services.SessionPair, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookieName, pair.AccessToken, opts.AccessMaxAge, "/", "", opts.Secure, true)
	c.SetCookie("refreshToken", pair.RefreshToken, opts.RefreshMaxAge, "/", "", opts.Secure, true)
}

// clearSessionCookies expires both session cookies.
func clearSessionCookies(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessCookieName, "", -1, "/", "", opts.Secure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", opts.Secure, true)
}

// userID returns the authenticated user's id stored by the auth middleware.
// Protected routes are always behind RequireAuth, so an empty value here
// indicates a wiring bug rather than a client error.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// pageQuery parses and bounds the page/limit query parameters.
func pageQuery(c *gin.Context) (pg, limit int) {
	pg = utils.AtoiDefault(c.Query("page"), utils.DefaultPage)
	limit = utils.AtoiDefault(c.Query("limit"), utils.DefaultLimit)
	return utils.CoercePage(pg, limit)
}
