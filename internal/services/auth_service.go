// Package services – AuthService
//
// This file implements the AuthService, which owns the account and session
// lifecycle: registration (including the mandatory avatar upload), login,
// refresh-token rotation, logout, and password changes.
//
// Session model: each account holds at most one live refresh token, persisted
// on the user row. Login and rotation overwrite it, logout clears it. A
// presented refresh token is honored only when it both verifies
// cryptographically and exactly matches the persisted value; anything else is
// ErrSessionExpired. Rotation therefore invalidates every previously issued
// refresh token, including the one just redeemed.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/auth"
	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/media"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// AuthRepo defines the repository contract required by AuthService.
type AuthRepo interface {
	// CreateUser inserts a new account row.
	CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error)

	// GetUserByID fetches an account by primary key.
	GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)

	// GetUserByLogin fetches an account by folded username or email.
	GetUserByLogin(ctx context.Context, db *gorm.DB, key string) (*domain.User, error)

	// UserExists reports whether the folded username or email is taken.
	UserExists(ctx context.Context, db *gorm.DB, username, email string) (bool, error)

	// SetRefreshToken overwrites the persisted refresh credential
	// (empty string revokes it).
	SetRefreshToken(ctx context.Context, db *gorm.DB, userID, token string) error

	// UpdatePasswordHash stores a new password hash.
	UpdatePasswordHash(ctx context.Context, db *gorm.DB, userID, hash string) error
}

// TokenIssuer is the subset of the token manager AuthService depends on.
type TokenIssuer interface {
	IssuePair(u *domain.User) (access, refresh string, err error)
	ParseRefresh(raw string) (*auth.Claims, error)
}

// RegisterInput carries the fields of a registration request. AvatarPath is
// the local spool path of the uploaded avatar (required); CoverPath is
// optional and may be empty.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	AvatarPath string
	CoverPath  string
}

// SessionPair is an issued access/refresh token pair.
type SessionPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides account registration and session management.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the account repository used by this service.
	Repo AuthRepo
	// Tokens issues and verifies the session token pair.
	Tokens TokenIssuer
	// Media uploads avatar and cover images during registration.
	Media media.Host
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, r AuthRepo, tokens TokenIssuer, host media.Host) *AuthService {
	return &AuthService{DB: db, Repo: r, Tokens: tokens, Media: host}
}

// Register creates a new account. Username and email are case-folded before
// the uniqueness check and storage, the password is hashed with bcrypt, and
// the avatar (required) plus optional cover image are pushed to the media
// host. Returns the stored user with secret fields still populated; callers
// must serialize via the JSON tags, which hide them.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := utils.NormalizeKey(in.Username)
	email := utils.NormalizeKey(in.Email)
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || fullName == "" || in.Password == "" || in.AvatarPath == "" {
		return nil, ErrMissingFields
	}

	taken, err := s.Repo.UserExists(ctx, s.DB, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	avatar, err := s.Media.Upload(ctx, in.AvatarPath)
	if err != nil {
		return nil, err
	}
	var cover *media.Asset
	if in.CoverPath != "" {
		if cover, err = s.Media.Upload(ctx, in.CoverPath); err != nil {
			return nil, err
		}
	}

	u := &domain.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Avatar:       domain.Image{URL: avatar.URL, PublicID: avatar.PublicID},
	}
	if cover != nil {
		u.CoverImage = domain.Image{URL: cover.URL, PublicID: cover.PublicID}
	}
	return s.Repo.CreateUser(ctx, s.DB, u)
}

// Login verifies the identifier (username or email) and password, issues a
// fresh token pair, and persists the refresh token as the account's single
// live session credential. Unknown identifiers and wrong passwords are both
// reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, *SessionPair, error) {
	key := utils.NormalizeKey(identifier)
	if key == "" || password == "" {
		return nil, nil, ErrMissingFields
	}

	u, err := s.Repo.GetUserByLogin(ctx, s.DB, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if err := auth.CheckPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	pair, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Refresh redeems a refresh token: it must verify against the refresh secret
// and exactly match the credential persisted for the account. On success a
// new pair is issued and persisted, which retires the presented token.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*domain.User, *SessionPair, error) {
	if rawToken == "" {
		return nil, nil, ErrSessionExpired
	}
	claims, err := s.Tokens.ParseRefresh(rawToken)
	if err != nil {
		return nil, nil, ErrSessionExpired
	}

	u, err := s.Repo.GetUserByID(ctx, s.DB, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrSessionExpired
	}
	if err != nil {
		return nil, nil, err
	}
	// A rotated or revoked token verifies but no longer matches.
	if u.RefreshToken == "" || u.RefreshToken != rawToken {
		return nil, nil, ErrSessionExpired
	}

	pair, err := s.issueSession(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Logout revokes the account's live session by clearing the persisted
// refresh token. Safe to call for an already logged-out user.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	err := s.Repo.SetRefreshToken(ctx, s.DB, userID, "")
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrMissingFields
	}
	u, err := s.Repo.GetUserByID(ctx, s.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(oldPassword, u.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			return ErrInvalidCredentials
		}
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePasswordHash(ctx, s.DB, userID, hash)
}

func (s *AuthService) issueSession(ctx context.Context, u *domain.User) (*SessionPair, error) {
	access, refresh, err := s.Tokens.IssuePair(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetRefreshToken(ctx, s.DB, u.ID, refresh); err != nil {
		return nil, err
	}
	u.RefreshToken = refresh
	return &SessionPair{AccessToken: access, RefreshToken: refresh}, nil
}
