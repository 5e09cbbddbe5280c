// Package services – TweetService
//
// Tweets are short status posts independent of any video. The service gates
// edits and deletes on ownership; a delete also removes the tweet's likes.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
)

// TweetRepo defines the repository contract required by TweetService.
type TweetRepo interface {
	CreateTweet(ctx context.Context, db *gorm.DB, ownerID, content string) (*domain.Tweet, error)
	GetTweet(ctx context.Context, db *gorm.DB, id string) (*domain.Tweet, error)
	ListUserTweets(ctx context.Context, db *gorm.DB, viewerID, userID string) ([]repo.TweetView, error)
	UpdateTweetContent(ctx context.Context, db *gorm.DB, id, content string) error
	DeleteTweet(ctx context.Context, db *gorm.DB, id string) error
	DeleteLikesFor(ctx context.Context, db *gorm.DB, target repo.LikeTarget, targetID string) error
}

// TweetService provides tweet CRUD with ownership enforcement.
type TweetService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the tweet repository used by this service.
	Repo TweetRepo
}

// NewTweetService constructs a TweetService.
func NewTweetService(db *gorm.DB, r TweetRepo) *TweetService {
	return &TweetService{DB: db, Repo: r}
}

// Create posts a new tweet by ownerID.
func (s *TweetService) Create(ctx context.Context, ownerID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return s.Repo.CreateTweet(ctx, s.DB, ownerID, content)
}

// ListUser returns a user's tweets, newest first, with per-row like fields
// computed for the viewer.
func (s *TweetService) ListUser(ctx context.Context, viewerID, userID string) ([]repo.TweetView, error) {
	return s.Repo.ListUserTweets(ctx, s.DB, viewerID, userID)
}

// Update replaces the content of a tweet owned by the caller.
func (s *TweetService) Update(ctx context.Context, callerID, tweetID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.owned(ctx, callerID, tweetID); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateTweetContent(ctx, s.DB, tweetID, content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	tw, err := s.Repo.GetTweet(ctx, s.DB, tweetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTweetNotFound
	}
	return tw, err
}

// Delete removes a tweet owned by the caller along with its like edges.
func (s *TweetService) Delete(ctx context.Context, callerID, tweetID string) error {
	if _, err := s.owned(ctx, callerID, tweetID); err != nil {
		return err
	}
	if err := s.Repo.DeleteLikesFor(ctx, s.DB, repo.LikeTweet, tweetID); err != nil {
		return err
	}
	err := s.Repo.DeleteTweet(ctx, s.DB, tweetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTweetNotFound
	}
	return err
}

func (s *TweetService) owned(ctx context.Context, callerID, tweetID string) (*domain.Tweet, error) {
	tw, err := s.Repo.GetTweet(ctx, s.DB, tweetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTweetNotFound
	}
	if err != nil {
		return nil, err
	}
	if tw.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return tw, nil
}
