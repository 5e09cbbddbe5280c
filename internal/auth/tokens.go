// Package auth implements the session-token lifecycle: issuing and verifying
// the short-lived access credential and the long-lived refresh credential,
// plus password hashing. Tokens are stateless HS256 JWTs; the refresh token
// additionally gets persisted on the user row by the service layer, which is
// what enforces the single-active-refresh-credential invariant.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/streamhub/go-video-backend/internal/domain"
)

// Sentinel errors returned by token verification. Handlers map all of them
// to 401 responses.
var (
	// ErrNoToken indicates that no credential was supplied at all.
	ErrNoToken = errors.New("no token supplied")

	// ErrInvalidToken indicates a credential that failed signature or
	// expiry verification, or whose claims are malformed.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the decoded payload of a verified token. Refresh tokens carry
// only the user id; access tokens carry the identity snapshot as well.
type Claims struct {
	UserID   string
	Email    string
	Username string
	FullName string
	IssuedAt time.Time
}

// TokenManager issues and verifies the access/refresh token pair. The two
// credentials are signed with independent secrets so that one can never be
// presented in place of the other.
//
// The zero value is not usable; construct with NewTokenManager.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	// now is a seam for tests; defaults to time.Now.
	now func() time.Time
}

// NewTokenManager constructs a TokenManager from the two signing secrets and
// the configured lifetimes.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// IssueAccessToken signs a short-lived access token carrying the user's
// identity snapshot.
func (tm *TokenManager) IssueAccessToken(u *domain.User) (string, error) {
	now := tm.now().UTC()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"email":    u.Email,
		"username": u.Username,
		"fullName": u.FullName,
		"iat":      now.Unix(),
		"exp":      now.Add(tm.accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.accessSecret)
}

// IssueRefreshToken signs a long-lived refresh token carrying only the user
// id. The caller is responsible for persisting it on the user record.
func (tm *TokenManager) IssueRefreshToken(userID string) (string, error) {
	now := tm.now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(tm.refreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.refreshSecret)
}

// IssuePair issues a fresh access/refresh token pair for the user.
func (tm *TokenManager) IssuePair(u *domain.User) (access, refresh string, err error) {
	access, err = tm.IssueAccessToken(u)
	if err != nil {
		return "", "", err
	}
	refresh, err = tm.IssueRefreshToken(u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ParseAccess verifies an access token's signature and expiry and returns
// its decoded claims.
func (tm *TokenManager) ParseAccess(raw string) (*Claims, error) {
	return tm.parse(raw, tm.accessSecret)
}

// ParseRefresh verifies a refresh token's signature and expiry and returns
// its decoded claims. Exact-match comparison against the persisted value is
// the service layer's job; this only proves the token was ours and is fresh.
func (tm *TokenManager) ParseRefresh(raw string) (*Claims, error) {
	return tm.parse(raw, tm.refreshSecret)
}

func (tm *TokenManager) parse(raw string, secret []byte) (*Claims, error) {
	if raw == "" {
		return nil, ErrNoToken
	}
	claims := make(jwt.MapClaims)
	tok, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}
	out := &Claims{UserID: sub}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["username"].(string); ok {
		out.Username = v
	}
	if v, ok := claims["fullName"].(string); ok {
		out.FullName = v
	}
	return out, nil
}
