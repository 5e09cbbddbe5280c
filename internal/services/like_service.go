// Package services – LikeService
//
// Likes are existence-based toggles: the same call flips the edge on or off,
// so replaying a toggle is always safe. The target must exist when the edge
// is created.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
)

// LikeRepo defines the repository contract required by LikeService.
type LikeRepo interface {
	FindLike(ctx context.Context, db *gorm.DB, actorID string, target repo.LikeTarget, targetID string) (*domain.Like, error)
	CreateLike(ctx context.Context, db *gorm.DB, actorID string, target repo.LikeTarget, targetID string) error
	DeleteLike(ctx context.Context, db *gorm.DB, id string) error
	ListLikedVideos(ctx context.Context, db *gorm.DB, userID string) ([]repo.LikedVideoView, error)

	// Target existence checks.
	GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error)
	GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error)
	GetTweet(ctx context.Context, db *gorm.DB, id string) (*domain.Tweet, error)
}

// LikeService provides like toggles on videos, comments, and tweets.
type LikeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the like repository used by this service.
	Repo LikeRepo
}

// NewLikeService constructs a LikeService.
func NewLikeService(db *gorm.DB, r LikeRepo) *LikeService {
	return &LikeService{DB: db, Repo: r}
}

// ToggleVideo flips the caller's like on a video. Returns true when the edge
// now exists (liked), false when it was removed.
func (s *LikeService) ToggleVideo(ctx context.Context, actorID, videoID string) (bool, error) {
	if _, err := s.Repo.GetVideo(ctx, s.DB, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrVideoNotFound
		}
		return false, err
	}
	return s.toggle(ctx, actorID, repo.LikeVideo, videoID)
}

// ToggleComment flips the caller's like on a comment.
func (s *LikeService) ToggleComment(ctx context.Context, actorID, commentID string) (bool, error) {
	if _, err := s.Repo.GetComment(ctx, s.DB, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrCommentNotFound
		}
		return false, err
	}
	return s.toggle(ctx, actorID, repo.LikeComment, commentID)
}

// ToggleTweet flips the caller's like on a tweet.
func (s *LikeService) ToggleTweet(ctx context.Context, actorID, tweetID string) (bool, error) {
	if _, err := s.Repo.GetTweet(ctx, s.DB, tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrTweetNotFound
		}
		return false, err
	}
	return s.toggle(ctx, actorID, repo.LikeTweet, tweetID)
}

// LikedVideos returns the published videos the user has liked, most recently
// liked first.
func (s *LikeService) LikedVideos(ctx context.Context, userID string) ([]repo.LikedVideoView, error) {
	return s.Repo.ListLikedVideos(ctx, s.DB, userID)
}

func (s *LikeService) toggle(ctx context.Context, actorID string, target repo.LikeTarget, targetID string) (bool, error) {
	existing, err := s.Repo.FindLike(ctx, s.DB, actorID, target, targetID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, s.Repo.DeleteLike(ctx, s.DB, existing.ID)
	}
	return true, s.Repo.CreateLike(ctx, s.DB, actorID, target, targetID)
}
