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

type fakeVideoSvc struct {
	published  *services.PublishInput
	publishErr error
	listIn     services.ListVideosInput
	items      []repo.VideoListItem
	view       *repo.VideoView
	getErr     error
	updated    [4]string // videoID, title, description, thumbnailPath
	deleteErr  error
	deleted    string
	toggled    bool
	toggleErr  error
}

func (f *fakeVideoSvc) Publish(_ context.Context, _ string, in services.PublishInput) (*domain.Video, error) {
	f.published = &in
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	return &domain.Video{ID: "v-1", Title: in.Title}, nil
}

func (f *fakeVideoSvc) List(_ context.Context, in services.ListVideosInput) ([]repo.VideoListItem, utils.PageMeta, error) {
	f.listIn = in
	return f.items, utils.NewPageMeta(int64(len(f.items)), in.Page, in.Limit), nil
}

func (f *fakeVideoSvc) Get(_ context.Context, _, videoID string) (*repo.VideoView, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.view, nil
}

func (f *fakeVideoSvc) Update(_ context.Context, _, videoID, title, description, thumbnailPath string) (*domain.Video, error) {
	f.updated = [4]string{videoID, title, description, thumbnailPath}
	return &domain.Video{ID: videoID}, nil
}

func (f *fakeVideoSvc) Delete(_ context.Context, _, videoID string) error {
	f.deleted = videoID
	return f.deleteErr
}

func (f *fakeVideoSvc) TogglePublish(_ context.Context, _, videoID string) (bool, error) {
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	f.toggled = !f.toggled
	return f.toggled, nil
}

func newVideoRouter(t *testing.T, svc VideoService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewVideoHandlers(svc, t.TempDir())
	r := gin.New()
	g := r.Group("/video", asUser("u-1"))
	g.GET("", h.List)
	g.POST("", h.Publish)
	g.GET("/:videoId", h.Get)
	g.PATCH("/:videoId", h.Update)
	g.DELETE("/:videoId", h.Delete)
	g.PATCH("/toggle/publish/:videoId", h.TogglePublish)
	return r
}

func TestListVideos_QueryParsing(t *testing.T) {
	svc := &fakeVideoSvc{items: []repo.VideoListItem{}}
	r := newVideoRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/video?page=2&limit=5&query=go&userId=u-9&sortBy=views&sortType=asc", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	in := svc.listIn
	if in.Page != 2 || in.Limit != 5 || in.Query != "go" || in.OwnerID != "u-9" {
		t.Fatalf("list input = %+v", in)
	}
	if in.SortBy != "views" || in.SortDesc {
		t.Fatalf("sort input = %+v", in)
	}

	// Default sort direction is descending.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/video", nil))
	if !svc.listIn.SortDesc {
		t.Fatalf("default sortType should be desc")
	}
}

func TestPublishVideo(t *testing.T) {
	t.Run("both files required", func(t *testing.T) {
		svc := &fakeVideoSvc{}
		r := newVideoRouter(t, svc)

		body, ctype := multipartBody(t,
			map[string]string{"title": "T", "description": "D"},
			map[string]string{"videoFile": "vvv"}, // thumbnail missing
		)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/video", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		if svc.published != nil {
			t.Fatalf("service must not be called without both files")
		}
	})

	t.Run("missing metadata", func(t *testing.T) {
		r := newVideoRouter(t, &fakeVideoSvc{})
		body, ctype := multipartBody(t, map[string]string{"title": "T"}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/video", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeVideoSvc{}
		r := newVideoRouter(t, svc)

		body, ctype := multipartBody(t,
			map[string]string{"title": "T", "description": "D"},
			map[string]string{"videoFile": "vvv", "thumbnail": "ttt"},
		)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/video", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		in := svc.published
		if in == nil || in.VideoPath == "" || in.ThumbnailPath == "" {
			t.Fatalf("publish input = %+v", in)
		}
	})
}

func TestGetVideo(t *testing.T) {
	svc := &fakeVideoSvc{view: &repo.VideoView{}}
	r := newVideoRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/video/v-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	svc.getErr = services.ErrVideoNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/video/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUpdateVideo(t *testing.T) {
	t.Run("needs at least one change", func(t *testing.T) {
		r := newVideoRouter(t, &fakeVideoSvc{})
		body, ctype := multipartBody(t, nil, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/video/v-1", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("details only", func(t *testing.T) {
		svc := &fakeVideoSvc{}
		r := newVideoRouter(t, svc)
		body, ctype := multipartBody(t, map[string]string{"title": "New"}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/video/v-1", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if svc.updated[0] != "v-1" || svc.updated[1] != "New" || svc.updated[3] != "" {
			t.Fatalf("update args = %v", svc.updated)
		}
	})

	t.Run("with thumbnail", func(t *testing.T) {
		svc := &fakeVideoSvc{}
		r := newVideoRouter(t, svc)
		body, ctype := multipartBody(t, nil, map[string]string{"thumbnail": "img"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/video/v-1", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if svc.updated[3] == "" {
			t.Fatalf("thumbnail path not passed: %v", svc.updated)
		}
	})
}

func TestDeleteVideo_OwnershipMapping(t *testing.T) {
	svc := &fakeVideoSvc{deleteErr: services.ErrForbidden}
	r := newVideoRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/video/v-1", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}

	svc.deleteErr = nil
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/video/v-1", nil))
	if w.Code != http.StatusOK || svc.deleted != "v-1" {
		t.Fatalf("status = %d deleted = %q", w.Code, svc.deleted)
	}
}

func TestTogglePublish(t *testing.T) {
	svc := &fakeVideoSvc{}
	r := newVideoRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/video/toggle/publish/v-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := envelope(t, w)
	data, _ := body["data"].(map[string]any)
	if data["isPublished"] != true {
		t.Fatalf("expected isPublished=true, got %v", data)
	}
}
