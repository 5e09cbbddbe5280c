// Package services – UserService
//
// This file implements the UserService, which covers the profile surface of
// an authenticated account: mutable account details, avatar and cover image
// replacement (with best-effort cleanup of the replaced asset), the public
// channel profile, and the paginated watch history.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/media"
	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)
	UserExists(ctx context.Context, db *gorm.DB, username, email string) (bool, error)
	UpdateAccountDetails(ctx context.Context, db *gorm.DB, userID, fullName, email string) error
	UpdateAvatar(ctx context.Context, db *gorm.DB, userID string, img domain.Image) error
	UpdateCoverImage(ctx context.Context, db *gorm.DB, userID string, img domain.Image) error
	GetChannelProfile(ctx context.Context, db *gorm.DB, viewerID, username string) (*repo.ChannelProfileView, error)
	CountWatchHistory(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	ListWatchHistoryPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]repo.WatchHistoryItem, error)
}

// UserService provides profile-level operations for authenticated users.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo
	// Media hosts avatar and cover images.
	Media media.Host
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, r UserRepo, host media.Host) *UserService {
	return &UserService{DB: db, Repo: r, Media: host}
}

// Get returns the account for userID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.Repo.GetUserByID(ctx, s.DB, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// UpdateAccount sets the account's full name and (folded) email. Both fields
// are required; a colliding email is rejected as ErrUserExists.
func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = utils.NormalizeKey(email)
	if fullName == "" || email == "" {
		return nil, ErrMissingFields
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if email != current.Email {
		taken, err := s.Repo.UserExists(ctx, s.DB, "", email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUserExists
		}
	}

	if err := s.Repo.UpdateAccountDetails(ctx, s.DB, userID, fullName, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Get(ctx, userID)
}

// UpdateAvatar uploads a replacement avatar from the local spool path, swaps
// the stored reference, and then destroys the previous asset best-effort.
func (s *UserService) UpdateAvatar(ctx context.Context, userID, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, userID, localPath,
		func(u *domain.User) domain.Image { return u.Avatar },
		s.Repo.UpdateAvatar)
}

// UpdateCoverImage uploads a replacement cover image and swaps the stored
// reference, destroying the previous asset best-effort.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID, localPath string) (*domain.User, error) {
	return s.replaceImage(ctx, userID, localPath,
		func(u *domain.User) domain.Image { return u.CoverImage },
		s.Repo.UpdateCoverImage)
}

func (s *UserService) replaceImage(
	ctx context.Context,
	userID, localPath string,
	old func(*domain.User) domain.Image,
	store func(context.Context, *gorm.DB, string, domain.Image) error,
) (*domain.User, error) {
	if localPath == "" {
		return nil, ErrMissingFields
	}
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, err := s.Media.Upload(ctx, localPath)
	if err != nil {
		return nil, err
	}
	if err := store(ctx, s.DB, userID, domain.Image{URL: asset.URL, PublicID: asset.PublicID}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// The replaced asset is orphaned now; removal is best-effort.
	if prev := old(current); prev.PublicID != "" {
		if err := s.Media.Destroy(ctx, prev.PublicID, "image"); err != nil {
			log.Warn().Err(err).Str("public_id", prev.PublicID).Msg("destroy replaced image failed")
		}
	}
	return s.Get(ctx, userID)
}

// ChannelProfile returns the aggregated public channel page for a username,
// including subscriber counts and whether the viewer subscribes.
func (s *UserService) ChannelProfile(ctx context.Context, viewerID, username string) (*repo.ChannelProfileView, error) {
	username = utils.NormalizeKey(username)
	if username == "" {
		return nil, ErrMissingFields
	}
	p, err := s.Repo.GetChannelProfile(ctx, s.DB, viewerID, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChannelNotFound
	}
	return p, err
}

// WatchHistory returns one page of the user's watch history, newest first,
// with pagination metadata.
func (s *UserService) WatchHistory(ctx context.Context, userID string, page, limit int) ([]repo.WatchHistoryItem, utils.PageMeta, error) {
	page, limit = utils.CoercePage(page, limit)

	total, err := s.Repo.CountWatchHistory(ctx, s.DB, userID)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	items, err := s.Repo.ListWatchHistoryPage(ctx, s.DB, userID, utils.Offset(page, limit), limit)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return items, utils.NewPageMeta(total, page, limit), nil
}
