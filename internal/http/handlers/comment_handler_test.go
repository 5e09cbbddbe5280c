package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/services"
	"github.com/streamhub/go-video-backend/internal/utils"
)

type fakeCommentSvc struct {
	added    [2]string // videoID, content
	addErr   error
	listArgs [3]any // videoID, page, limit
	updated  [2]string
	updErr   error
	deleted  string
	delErr   error
}

func (f *fakeCommentSvc) Add(_ context.Context, _, videoID, content string) (*domain.Comment, error) {
	f.added = [2]string{videoID, content}
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &domain.Comment{ID: "c-1", Content: content}, nil
}

func (f *fakeCommentSvc) List(_ context.Context, _, videoID string, page, limit int) ([]repo.CommentView, utils.PageMeta, error) {
	f.listArgs = [3]any{videoID, page, limit}
	return []repo.CommentView{}, utils.NewPageMeta(0, page, limit), nil
}

func (f *fakeCommentSvc) Update(_ context.Context, _, commentID, content string) (*domain.Comment, error) {
	f.updated = [2]string{commentID, content}
	if f.updErr != nil {
		return nil, f.updErr
	}
	return &domain.Comment{ID: commentID, Content: content}, nil
}

func (f *fakeCommentSvc) Delete(_ context.Context, _, commentID string) error {
	f.deleted = commentID
	return f.delErr
}

func newCommentRouter(t *testing.T, svc CommentService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewCommentHandlers(svc)
	r := gin.New()
	g := r.Group("/comment", asUser("u-1"))
	g.GET("/:videoId", h.List)
	g.POST("/:videoId", h.Add)
	g.PATCH("/c/:commentId", h.Update)
	g.DELETE("/c/:commentId", h.Delete)
	return r
}

func TestAddComment(t *testing.T) {
	svc := &fakeCommentSvc{}
	r := newCommentRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comment/v-1",
		jsonBody(t, gin.H{"content": "nice"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.added != [2]string{"v-1", "nice"} {
		t.Fatalf("add args = %v", svc.added)
	}

	// Blank content rejected before the service runs.
	svc.added = [2]string{}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/comment/v-1",
		jsonBody(t, gin.H{"content": "   "}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest || svc.added[0] != "" {
		t.Fatalf("blank content: status = %d, args = %v", w.Code, svc.added)
	}
}

func TestListComments(t *testing.T) {
	svc := &fakeCommentSvc{}
	r := newCommentRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comment/v-1?page=2&limit=4", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.listArgs != [3]any{"v-1", 2, 4} {
		t.Fatalf("list args = %v", svc.listArgs)
	}
	data, _ := envelope(t, w)["data"].(map[string]any)
	if docs, okDocs := data["docs"].([]any); !okDocs || len(docs) != 0 {
		t.Fatalf("docs must be an empty array: %v", data)
	}
}

func TestUpdateComment_OwnershipMapping(t *testing.T) {
	svc := &fakeCommentSvc{updErr: services.ErrForbidden}
	r := newCommentRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/comment/c/c-1",
		jsonBody(t, gin.H{"content": "edit"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestDeleteComment(t *testing.T) {
	svc := &fakeCommentSvc{}
	r := newCommentRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/comment/c/c-9", nil))
	if w.Code != http.StatusOK || svc.deleted != "c-9" {
		t.Fatalf("status = %d deleted = %q", w.Code, svc.deleted)
	}
	data, _ := envelope(t, w)["data"].(map[string]any)
	if data["commentId"] != "c-9" {
		t.Fatalf("deleted id missing from payload: %v", data)
	}
}
