// Package services – CommentService
//
// This file implements the CommentService: adding comments to published
// videos, the paginated comment listing with its derived like fields, and
// owner-gated edits and deletes (a delete also removes the comment's like
// edges).
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// CommentRepo defines the repository contract required by CommentService.
type CommentRepo interface {
	GetVideo(ctx context.Context, db *gorm.DB, id string) (*domain.Video, error)
	CreateComment(ctx context.Context, db *gorm.DB, videoID, ownerID, content string) (*domain.Comment, error)
	GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error)
	CountVideoComments(ctx context.Context, db *gorm.DB, videoID string) (int64, error)
	ListVideoCommentsPage(ctx context.Context, db *gorm.DB, viewerID, videoID string, offset, limit int) ([]repo.CommentView, error)
	UpdateCommentContent(ctx context.Context, db *gorm.DB, id, content string) error
	DeleteComment(ctx context.Context, db *gorm.DB, id string) error
	DeleteLikesFor(ctx context.Context, db *gorm.DB, target repo.LikeTarget, targetID string) error
}

// CommentService provides comment operations on videos.
type CommentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the comment repository used by this service.
	Repo CommentRepo
}

// NewCommentService constructs a CommentService.
func NewCommentService(db *gorm.DB, r CommentRepo) *CommentService {
	return &CommentService{DB: db, Repo: r}
}

// Add creates a comment by ownerID on the video.
func (s *CommentService) Add(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.Repo.GetVideo(ctx, s.DB, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return s.Repo.CreateComment(ctx, s.DB, videoID, ownerID, content)
}

// List returns one page of a video's comments, newest first, with pagination
// metadata. Derived fields (like count, viewer's like flag, owner block) are
// computed per row.
func (s *CommentService) List(ctx context.Context, viewerID, videoID string, page, limit int) ([]repo.CommentView, utils.PageMeta, error) {
	page, limit = utils.CoercePage(page, limit)

	if _, err := s.Repo.GetVideo(ctx, s.DB, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.PageMeta{}, ErrVideoNotFound
		}
		return nil, utils.PageMeta{}, err
	}

	total, err := s.Repo.CountVideoComments(ctx, s.DB, videoID)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	items, err := s.Repo.ListVideoCommentsPage(ctx, s.DB, viewerID, videoID, utils.Offset(page, limit), limit)
	if err != nil {
		return nil, utils.PageMeta{}, err
	}
	return items, utils.NewPageMeta(total, page, limit), nil
}

// Update replaces the content of a comment owned by the caller.
func (s *CommentService) Update(ctx context.Context, callerID, commentID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.owned(ctx, callerID, commentID); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateCommentContent(ctx, s.DB, commentID, content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	c, err := s.Repo.GetComment(ctx, s.DB, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	return c, err
}

// Delete removes a comment owned by the caller along with its like edges.
func (s *CommentService) Delete(ctx context.Context, callerID, commentID string) error {
	if _, err := s.owned(ctx, callerID, commentID); err != nil {
		return err
	}
	if err := s.Repo.DeleteLikesFor(ctx, s.DB, repo.LikeComment, commentID); err != nil {
		return err
	}
	err := s.Repo.DeleteComment(ctx, s.DB, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	return err
}

func (s *CommentService) owned(ctx context.Context, callerID, commentID string) (*domain.Comment, error) {
	c, err := s.Repo.GetComment(ctx, s.DB, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return c, nil
}
