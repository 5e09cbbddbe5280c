package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/streamhub/go-video-backend/internal/auth"
	"github.com/streamhub/go-video-backend/internal/domain"
	"github.com/streamhub/go-video-backend/internal/media"
)

// ----- Fakes -----

type fakeAuthRepo struct {
	users map[string]*domain.User // by id

	exists    bool
	existsErr error

	created *domain.User

	setTokenUserID string
	setTokenValue  string
	setTokenErr    error

	newHashUserID string
	newHash       string
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: map[string]*domain.User{}}
}

func (r *fakeAuthRepo) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	u.ID = "u-new"
	r.created = u
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeAuthRepo) GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAuthRepo) GetUserByLogin(ctx context.Context, db *gorm.DB, key string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == key || u.Email == key {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAuthRepo) UserExists(ctx context.Context, db *gorm.DB, username, email string) (bool, error) {
	return r.exists, r.existsErr
}

func (r *fakeAuthRepo) SetRefreshToken(ctx context.Context, db *gorm.DB, userID, token string) error {
	if r.setTokenErr != nil {
		return r.setTokenErr
	}
	r.setTokenUserID, r.setTokenValue = userID, token
	if u, ok := r.users[userID]; ok {
		u.RefreshToken = token
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAuthRepo) UpdatePasswordHash(ctx context.Context, db *gorm.DB, userID, hash string) error {
	r.newHashUserID, r.newHash = userID, hash
	return nil
}

type fakeTokens struct {
	issued    int
	parseID   string
	parseErr  error
	issueErr  error
}

func (t *fakeTokens) IssuePair(u *domain.User) (string, string, error) {
	if t.issueErr != nil {
		return "", "", t.issueErr
	}
	t.issued++
	// Distinct per call so rotation is observable.
	return "access-" + u.ID, "refresh-" + u.ID + "-" + string(rune('0'+t.issued)), nil
}

func (t *fakeTokens) ParseRefresh(raw string) (*auth.Claims, error) {
	if t.parseErr != nil {
		return nil, t.parseErr
	}
	return &auth.Claims{UserID: t.parseID}, nil
}

type fakeHost struct {
	uploads   []string
	uploadErr error
	failAfter int // fail the (n+1)th upload when > 0
	destroyed []string
}

func (h *fakeHost) Upload(ctx context.Context, localPath string) (*media.Asset, error) {
	if h.uploadErr != nil {
		return nil, h.uploadErr
	}
	if h.failAfter > 0 && len(h.uploads) >= h.failAfter {
		return nil, errors.New("upload rejected")
	}
	h.uploads = append(h.uploads, localPath)
	return &media.Asset{URL: "http://cdn/" + localPath, PublicID: "pid-" + localPath, Duration: 42}, nil
}

func (h *fakeHost) Destroy(ctx context.Context, publicID, resourceType string) error {
	h.destroyed = append(h.destroyed, publicID)
	return nil
}

func seedAuthUser(t *testing.T, r *fakeAuthRepo, id, username, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "User " + username,
		PasswordHash: hash,
	}
	r.users[id] = u
	return u
}

// ----- Tests -----

func TestRegister_FoldsAndCreates(t *testing.T) {
	repo := newFakeAuthRepo()
	host := &fakeHost{}
	svc := NewAuthService(nil, repo, &fakeTokens{}, host)

	u, err := svc.Register(context.Background(), RegisterInput{
		Username:   "  NewUser  ",
		Email:      "New@Example.COM",
		FullName:   "New User",
		Password:   "secret",
		AvatarPath: "avatar.png",
		CoverPath:  "cover.png",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Username != "newuser" || u.Email != "new@example.com" {
		t.Fatalf("expected folded identity, got %q / %q", u.Username, u.Email)
	}
	if u.PasswordHash == "secret" || u.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if len(host.uploads) != 2 {
		t.Fatalf("expected avatar and cover uploads, got %v", host.uploads)
	}
	if u.Avatar.URL == "" || u.CoverImage.URL == "" {
		t.Fatalf("image references missing: %+v", u)
	}
}

func TestRegister_Conflict(t *testing.T) {
	repo := newFakeAuthRepo()
	repo.exists = true
	host := &fakeHost{}
	svc := NewAuthService(nil, repo, &fakeTokens{}, host)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "taken", Email: "taken@example.com", FullName: "T", Password: "p", AvatarPath: "a.png",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(host.uploads) != 0 {
		t.Fatal("no media should be uploaded on conflict")
	}
}

func TestRegister_MissingAvatar(t *testing.T) {
	svc := NewAuthService(nil, newFakeAuthRepo(), &fakeTokens{}, &fakeHost{})
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "x", Email: "x@example.com", FullName: "X", Password: "p",
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestLogin_Success_PersistsRefreshToken(t *testing.T) {
	repo := newFakeAuthRepo()
	seedAuthUser(t, repo, "u1", "alice", "correct horse")
	svc := NewAuthService(nil, repo, &fakeTokens{}, &fakeHost{})

	u, pair, err := svc.Login(context.Background(), "Alice", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID != "u1" || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("unexpected result: user=%+v pair=%+v", u, pair)
	}
	if repo.setTokenUserID != "u1" || repo.setTokenValue != pair.RefreshToken {
		t.Fatalf("refresh token not persisted: %q for %q", repo.setTokenValue, repo.setTokenUserID)
	}
}

func TestLogin_WrongPasswordAndUnknownUser_SameError(t *testing.T) {
	repo := newFakeAuthRepo()
	seedAuthUser(t, repo, "u1", "alice", "right")
	svc := NewAuthService(nil, repo, &fakeTokens{}, &fakeHost{})

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	_, _, err = svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefresh_RotatesAndRetiresOldToken(t *testing.T) {
	repo := newFakeAuthRepo()
	u := seedAuthUser(t, repo, "u1", "alice", "pw")
	tokens := &fakeTokens{parseID: "u1"}
	svc := NewAuthService(nil, repo, tokens, &fakeHost{})

	_, first, err := svc.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, second, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("rotation must issue a new refresh token")
	}
	if u.RefreshToken != second.RefreshToken {
		t.Fatal("new refresh token must be persisted")
	}

	// Replaying the redeemed token fails: it no longer matches.
	if _, _, err := svc.Refresh(context.Background(), first.RefreshToken); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("replay: expected ErrSessionExpired, got %v", err)
	}
}

func TestRefresh_RejectsInvalidAndRevoked(t *testing.T) {
	repo := newFakeAuthRepo()
	seedAuthUser(t, repo, "u1", "alice", "pw")
	tokens := &fakeTokens{parseID: "u1"}
	svc := NewAuthService(nil, repo, tokens, &fakeHost{})

	if _, _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("empty token: expected ErrSessionExpired, got %v", err)
	}

	tokens.parseErr = auth.ErrInvalidToken
	if _, _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("invalid token: expected ErrSessionExpired, got %v", err)
	}
	tokens.parseErr = nil

	// Verifies but nothing persisted (logged out): rejected.
	if _, _, err := svc.Refresh(context.Background(), "refresh-u1-1"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("revoked: expected ErrSessionExpired, got %v", err)
	}
}

func TestLogout_ClearsToken(t *testing.T) {
	repo := newFakeAuthRepo()
	u := seedAuthUser(t, repo, "u1", "alice", "pw")
	u.RefreshToken = "live"
	svc := NewAuthService(nil, repo, &fakeTokens{}, &fakeHost{})

	if err := svc.Logout(context.Background(), "u1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if u.RefreshToken != "" {
		t.Fatalf("expected cleared token, got %q", u.RefreshToken)
	}
	if err := svc.Logout(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	repo := newFakeAuthRepo()
	seedAuthUser(t, repo, "u1", "alice", "old pw")
	svc := NewAuthService(nil, repo, &fakeTokens{}, &fakeHost{})

	if err := svc.ChangePassword(context.Background(), "u1", "wrong", "new pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password: expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), "u1", "old pw", "new pw"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if repo.newHashUserID != "u1" || repo.newHash == "" || repo.newHash == "new pw" {
		t.Fatalf("new hash not stored correctly: %q", repo.newHash)
	}
	if err := auth.CheckPassword("new pw", repo.newHash); err != nil {
		t.Fatalf("stored hash must verify new password: %v", err)
	}
}
