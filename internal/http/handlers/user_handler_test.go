package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/repo"
	"github.com/streamhub/go-video-backend/internal/services"
	"github.com/streamhub/go-video-backend/internal/utils"
)

// ---------- fakes ----------

type fakeAuthSvc struct {
	registered *services.RegisterInput
	loginID    string
	loginErr   error
	refreshErr error
	loggedOut  string
	changed    [2]string
	changeErr  error
	user       *domain.User
	pair       *services.SessionPair
}

func (f *fakeAuthSvc) Register(_ context.Context, in services.RegisterInput) (*domain.User, error) {
	f.registered = &in
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.user, nil
}

func (f *fakeAuthSvc) Login(_ context.Context, identifier, password string) (*domain.User, *services.SessionPair, error) {
	f.loginID = identifier
	if f.loginErr != nil {
		return nil, nil, f.loginErr
	}
	return f.user, f.pair, nil
}

func (f *fakeAuthSvc) Refresh(_ context.Context, raw string) (*domain.User, *services.SessionPair, error) {
	if f.refreshErr != nil {
		return nil, nil, f.refreshErr
	}
	return f.user, f.pair, nil
}

func (f *fakeAuthSvc) Logout(_ context.Context, userID string) error {
	f.loggedOut = userID
	return nil
}

func (f *fakeAuthSvc) ChangePassword(_ context.Context, _, oldPw, newPw string) error {
	f.changed = [2]string{oldPw, newPw}
	return f.changeErr
}

type fakeUserSvc struct {
	user       *domain.User
	getErr     error
	avatarPath string
	coverPath  string
	profile    *repo.ChannelProfileView
	history    []repo.WatchHistoryItem
	histMeta   utils.PageMeta
	histPage   [2]int
}

func (f *fakeUserSvc) Get(context.Context, string) (*domain.User, error) {
	return f.user, f.getErr
}

func (f *fakeUserSvc) UpdateAccount(_ context.Context, _, fullName, email string) (*domain.User, error) {
	return f.user, f.getErr
}

func (f *fakeUserSvc) UpdateAvatar(_ context.Context, _, localPath string) (*domain.User, error) {
	f.avatarPath = localPath
	return f.user, nil
}

func (f *fakeUserSvc) UpdateCoverImage(_ context.Context, _, localPath string) (*domain.User, error) {
	f.coverPath = localPath
	return f.user, nil
}

func (f *fakeUserSvc) ChannelProfile(_ context.Context, _, username string) (*repo.ChannelProfileView, error) {
	if f.profile == nil {
		return nil, services.ErrChannelNotFound
	}
	return f.profile, nil
}

func (f *fakeUserSvc) WatchHistory(_ context.Context, _ string, page, limit int) ([]repo.WatchHistoryItem, utils.PageMeta, error) {
	f.histPage = [2]int{page, limit}
	return f.history, f.histMeta, nil
}

func newUserRouter(t *testing.T, authSvc AuthService, userSvc UserService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewUserHandlers(authSvc, userSvc, t.TempDir(), CookieOptions{AccessMaxAge: 900, RefreshMaxAge: 86400})
	r := gin.New()
	g := r.Group("/users")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh-token", h.RefreshToken)
	auth := g.Group("", asUser("u-1"))
	auth.POST("/logout", h.Logout)
	auth.POST("/change-password", h.ChangePassword)
	auth.GET("/current-user", h.CurrentUser)
	auth.PATCH("/update-account", h.UpdateAccount)
	auth.PATCH("/avatar", h.UpdateAvatar)
	auth.PATCH("/cover-image", h.UpdateCoverImage)
	auth.GET("/c/:username", h.ChannelProfile)
	auth.GET("/history", h.WatchHistory)
	return r
}

// ---------- tests ----------

func TestRegister_SpoolsUploadsAndCreates(t *testing.T) {
	authSvc := &fakeAuthSvc{user: &domain.User{ID: "u-1", Username: "jane"}}
	r := newUserRouter(t, authSvc, &fakeUserSvc{})

	body, ctype := multipartBody(t,
		map[string]string{
			"fullName": "Jane Doe",
			"email":    "jane@example.com",
			"username": "jane",
			"password": "hunter2!",
		},
		map[string]string{"avatar": "img-bytes", "coverImage": "cover-bytes"},
	)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	in := authSvc.registered
	if in == nil || in.Username != "jane" || in.AvatarPath == "" || in.CoverPath == "" {
		t.Fatalf("register input not passed through: %+v", in)
	}
}

func TestRegister_RejectedSignupRemovesSpooledFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tmp := t.TempDir()
	h := NewUserHandlers(&fakeAuthSvc{loginErr: services.ErrUserExists}, &fakeUserSvc{}, tmp, CookieOptions{})
	r := gin.New()
	r.POST("/users/register", h.Register)

	body, ctype := multipartBody(t,
		map[string]string{
			"fullName": "Jane Doe",
			"email":    "jane@example.com",
			"username": "jane",
			"password": "hunter2!",
		},
		map[string]string{"avatar": "img-bytes", "coverImage": "cover-bytes"},
	)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/register", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	left, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("read spool dir: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("spool dir not cleaned, %d files left", len(left))
	}
}

func TestRegister_Validation(t *testing.T) {
	r := newUserRouter(t, &fakeAuthSvc{}, &fakeUserSvc{})

	t.Run("missing fields", func(t *testing.T) {
		body, ctype := multipartBody(t, map[string]string{"username": "jane"}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/register", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("missing avatar", func(t *testing.T) {
		body, ctype := multipartBody(t, map[string]string{
			"fullName": "J", "email": "j@x.com", "username": "j", "password": "p",
		}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/register", body)
		req.Header.Set("Content-Type", ctype)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		body2 := envelope(t, w)
		if msg, _ := body2["message"].(string); msg != "avatar file is required" {
			t.Fatalf("message = %q", msg)
		}
	})
}

func TestLogin_SetsCookiesAndReturnsPair(t *testing.T) {
	authSvc := &fakeAuthSvc{
		user: &domain.User{ID: "u-1", Username: "jane"},
		pair: &services.SessionPair{AccessToken: "acc", RefreshToken: "ref"},
	}
	r := newUserRouter(t, authSvc, &fakeUserSvc{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/login",
		jsonBody(t, gin.H{"email": "jane@example.com", "password": "hunter2!"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if authSvc.loginID != "jane@example.com" {
		t.Fatalf("identifier = %q", authSvc.loginID)
	}
	body := envelope(t, w)
	data, _ := body["data"].(map[string]any)
	if data["accessToken"] != "acc" || data["refreshToken"] != "ref" {
		t.Fatalf("tokens missing from body: %v", data)
	}
	names := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		names[ck.Name] = true
	}
	if !names["accessToken"] || !names["refreshToken"] {
		t.Fatalf("session cookies not set: %v", names)
	}
}

func TestLogin_Failures(t *testing.T) {
	t.Run("missing identifier", func(t *testing.T) {
		r := newUserRouter(t, &fakeAuthSvc{}, &fakeUserSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/login",
			jsonBody(t, gin.H{"password": "p"}))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		r := newUserRouter(t, &fakeAuthSvc{loginErr: services.ErrInvalidCredentials}, &fakeUserSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/login",
			jsonBody(t, gin.H{"username": "jane", "password": "wrong"}))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", w.Code)
		}
	})
}

func TestRefreshToken_CookieAndBody(t *testing.T) {
	authSvc := &fakeAuthSvc{
		user: &domain.User{ID: "u-1"},
		pair: &services.SessionPair{AccessToken: "acc2", RefreshToken: "ref2"},
	}
	r := newUserRouter(t, authSvc, &fakeUserSvc{})

	t.Run("from cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "ref1"})
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("from body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/refresh-token",
			jsonBody(t, gin.H{"refreshToken": "ref1"}))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/refresh-token", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("replayed token", func(t *testing.T) {
		rr := newUserRouter(t, &fakeAuthSvc{refreshErr: services.ErrSessionExpired}, &fakeUserSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "stale"})
		rr.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", w.Code)
		}
	})
}

func TestLogout_RevokesAndClearsCookies(t *testing.T) {
	authSvc := &fakeAuthSvc{}
	r := newUserRouter(t, authSvc, &fakeUserSvc{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/users/logout", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if authSvc.loggedOut != "u-1" {
		t.Fatalf("logout user = %q", authSvc.loggedOut)
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Value != "" {
			t.Fatalf("cookie %s not cleared", ck.Name)
		}
	}
}

func TestChangePassword(t *testing.T) {
	authSvc := &fakeAuthSvc{}
	r := newUserRouter(t, authSvc, &fakeUserSvc{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/change-password",
		jsonBody(t, gin.H{"oldPassword": "old", "newPassword": "new"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if authSvc.changed != [2]string{"old", "new"} {
		t.Fatalf("change args = %v", authSvc.changed)
	}
}

func TestUpdateAvatar_RequiresFile(t *testing.T) {
	userSvc := &fakeUserSvc{user: &domain.User{ID: "u-1"}}
	r := newUserRouter(t, &fakeAuthSvc{}, userSvc)

	// Without a file part -> 400.
	body, ctype := multipartBody(t, nil, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/avatar", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	// With a file part -> spooled and passed to the service.
	body, ctype = multipartBody(t, nil, map[string]string{"avatar": "new-img"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/users/avatar", body)
	req.Header.Set("Content-Type", ctype)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if userSvc.avatarPath == "" {
		t.Fatalf("avatar spool path not passed to service")
	}
}

func TestChannelProfile(t *testing.T) {
	userSvc := &fakeUserSvc{profile: &repo.ChannelProfileView{Username: "jane"}}
	r := newUserRouter(t, &fakeAuthSvc{}, userSvc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/c/jane", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	userSvc.profile = nil
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/c/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestWatchHistory_PaginationPassthrough(t *testing.T) {
	userSvc := &fakeUserSvc{
		history:  []repo.WatchHistoryItem{},
		histMeta: utils.NewPageMeta(0, 2, 5),
	}
	r := newUserRouter(t, &fakeAuthSvc{}, userSvc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/history?page=2&limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if userSvc.histPage != [2]int{2, 5} {
		t.Fatalf("page args = %v", userSvc.histPage)
	}
	body := envelope(t, w)
	data, _ := body["data"].(map[string]any)
	if _, hasDocs := data["docs"]; !hasDocs {
		t.Fatalf("paginated data must carry docs: %v", data)
	}
	if data["page"] != float64(2) || data["limit"] != float64(5) {
		t.Fatalf("page meta missing: %v", data)
	}
}
