package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthHeader carries the token on every authenticated request.
const AuthHeader = "X-Authentication"

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

type ctxKey int

const claimsKey ctxKey = iota

// Claims identify the user and the vault a token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Login  string `json:"login"`
	Vault  string `json:"vault"`
}

// IssueToken signs a token for a user of vault.
func IssueToken(userID int64, login, vault, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID: userID,
		Login:  login,
		Vault:  vault,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies a token and returns its claims.
func ParseToken(token, secret string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// WithAuth puts the claims of a valid X-Authentication token into the request
// context. Requests without a valid token pass through anonymously.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AuthHeader)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := ParseToken(token, secret)
			if err != nil {
				sugar.Debugw("rejected token", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// RequireAuth answers 401 unless WithAuth accepted a token.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaimsFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"Message":"Login to application failed."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetClaimsFromContext returns the claims set by WithAuth.
func GetClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// GetUserIDFromContext returns the authenticated user ID.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	c, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return c.UserID, true
}
