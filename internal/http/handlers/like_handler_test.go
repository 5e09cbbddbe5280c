package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/services"
)

type fakeLikeSvc struct {
	targets map[string]bool // id -> liked state after toggle
	err     error
	liked   []repo.LikedVideoView
}

func (f *fakeLikeSvc) toggle(id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.targets == nil {
		f.targets = map[string]bool{}
	}
	f.targets[id] = !f.targets[id]
	return f.targets[id], nil
}

func (f *fakeLikeSvc) ToggleVideo(_ context.Context, _, id string) (bool, error)   { return f.toggle(id) }
func (f *fakeLikeSvc) ToggleComment(_ context.Context, _, id string) (bool, error) { return f.toggle(id) }
func (f *fakeLikeSvc) ToggleTweet(_ context.Context, _, id string) (bool, error)   { return f.toggle(id) }
func (f *fakeLikeSvc) LikedVideos(context.Context, string) ([]repo.LikedVideoView, error) {
	return f.liked, f.err
}

func newLikeRouter(t *testing.T, svc LikeService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewLikeHandlers(svc)
	r := gin.New()
	g := r.Group("/likes", asUser("u-1"))
	g.POST("/toggle/v/:videoId", h.ToggleVideo)
	g.POST("/toggle/c/:commentId", h.ToggleComment)
	g.POST("/toggle/t/:tweetId", h.ToggleTweet)
	g.GET("/videos", h.LikedVideos)
	return r
}

func TestToggleLike_OnOffOn(t *testing.T) {
	svc := &fakeLikeSvc{}
	r := newLikeRouter(t, svc)

	want := []bool{true, false, true}
	for i, expect := range want {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/likes/toggle/v/v-1", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("toggle %d: status = %d", i, w.Code)
		}
		data, _ := envelope(t, w)["data"].(map[string]any)
		if data["isLiked"] != expect {
			t.Fatalf("toggle %d: isLiked = %v, want %v", i, data["isLiked"], expect)
		}
	}
}

func TestToggleLike_AllTargetKinds(t *testing.T) {
	svc := &fakeLikeSvc{}
	r := newLikeRouter(t, svc)

	for _, path := range []string{
		"/likes/toggle/v/v-1",
		"/likes/toggle/c/c-1",
		"/likes/toggle/t/t-1",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, w.Code)
		}
	}
	if len(svc.targets) != 3 {
		t.Fatalf("expected 3 distinct targets, got %v", svc.targets)
	}
}

func TestToggleLike_MissingTarget(t *testing.T) {
	svc := &fakeLikeSvc{err: services.ErrCommentNotFound}
	r := newLikeRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/likes/toggle/c/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestLikedVideos(t *testing.T) {
	svc := &fakeLikeSvc{liked: []repo.LikedVideoView{}}
	r := newLikeRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/likes/videos", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := envelope(t, w)
	if docs, isArr := body["data"].([]any); !isArr || len(docs) != 0 {
		t.Fatalf("expected empty array data: %v", body["data"])
	}
}
