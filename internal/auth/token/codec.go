// Package token signs and verifies the access/refresh JWT pair. The two token
// kinds use independent secrets and lifetimes so a leaked access token cannot
// be replayed against the refresh path or vice versa.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformed        = errors.New("token malformed")
)

// Identity is the verified content of an access token.
type Identity struct {
	UserID string
	Role   string
}

// Config holds the two secrets and lifetimes. Secrets must be non-empty and
// distinct; NewCodec rejects anything else so a misconfigured deployment fails
// at startup instead of signing refresh tokens with the access secret.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Codec signs and verifies both token kinds with HS256.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewCodec(cfg Config) (*Codec, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token: both secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("token: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Codec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}, nil
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SignAccess issues a short-lived access token carrying {id, role}.
func (c *Codec) SignAccess(userID, role string) (string, error) {
	now := c.now()
	claims := accessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
}

// SignRefresh issues a long-lived refresh token carrying only {id}.
func (c *Codec) SignRefresh(userID string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.refreshSecret)
}

// VerifyAccess checks signature and expiry against the access secret.
func (c *Codec) VerifyAccess(tokenString string) (Identity, error) {
	claims := &accessClaims{}
	if err := c.parse(tokenString, claims, c.accessSecret); err != nil {
		return Identity{}, err
	}
	return Identity{UserID: claims.Subject, Role: claims.Role}, nil
}

// VerifyRefresh checks signature and expiry against the refresh secret and
// returns the embedded user id.
func (c *Codec) VerifyRefresh(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	if err := c.parse(tokenString, claims, c.refreshSecret); err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (c *Codec) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return ErrInvalidSignature
		default:
			return ErrMalformed
		}
	}
	if !tkn.Valid {
		return ErrMalformed
	}
	return nil
}
