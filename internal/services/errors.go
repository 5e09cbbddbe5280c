// Package services defines the business logic for accounts, videos, comments,
// tweets, likes, subscriptions, playlists, and the owner dashboard. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Account and session errors.
var (
	// ErrUserExists is returned when registration collides with an existing
	// username or email.
	ErrUserExists = errors.New("user with email or username already exists")

	// ErrUserNotFound indicates that the requested account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when a login attempt carries an
	// unknown identifier or a wrong password.
	ErrInvalidCredentials = errors.New("invalid user credentials")

	// ErrSessionExpired is returned when a presented refresh token is
	// missing, malformed, expired, or no longer the account's live
	// credential (it was rotated or revoked).
	ErrSessionExpired = errors.New("refresh token is expired or used")

	// ErrMissingFields is returned when a request omits required input.
	ErrMissingFields = errors.New("all fields are required")
)

// Resource errors.
var (
	// ErrVideoNotFound indicates that the requested video does not exist or
	// is not visible to the caller.
	ErrVideoNotFound = errors.New("video not found")

	// ErrCommentNotFound indicates that the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrTweetNotFound indicates that the requested tweet does not exist.
	ErrTweetNotFound = errors.New("tweet not found")

	// ErrPlaylistNotFound indicates that the requested playlist does not exist.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrChannelNotFound indicates that the requested channel (user) does
	// not exist.
	ErrChannelNotFound = errors.New("channel not found")
)

// Authorization and validation errors.
var (
	// ErrForbidden is returned when the caller does not own the resource a
	// mutation targets. Handlers map it to a single uniform status so the
	// response does not reveal whether the resource exists.
	ErrForbidden = errors.New("not allowed to modify this resource")

	// ErrSelfSubscribe is returned when a user attempts to subscribe to
	// their own channel.
	ErrSelfSubscribe = errors.New("cannot subscribe to your own channel")

	// ErrEmptyContent is returned when a comment or tweet body is blank.
	ErrEmptyContent = errors.New("content must not be empty")

	// ErrVideoAlreadyInPlaylist is returned when adding a video that is
	// already a member of the playlist.
	ErrVideoAlreadyInPlaylist = errors.New("video already in playlist")

	// ErrVideoNotInPlaylist is returned when removing a video that is not a
	// member of the playlist.
	ErrVideoNotInPlaylist = errors.New("video not in playlist")
)
