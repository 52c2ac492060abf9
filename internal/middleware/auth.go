package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionAuth guards the API behind the PIN-unlock session token. When
// no PIN is configured the middleware passes everything through.
type SessionAuth struct {
	secret  []byte
	enabled bool
}

// NewSessionAuth builds the middleware. enabled should be false when no
// PIN hash is configured.
func NewSessionAuth(secret string, enabled bool) *SessionAuth {
	return &SessionAuth{secret: []byte(secret), enabled: enabled}
}

// IssueToken creates a session token valid for the given duration.
func (sa *SessionAuth) IssueToken(validity time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": "owner",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(validity).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sa.secret)
}

// Middleware validates the bearer token on every request.
func (sa *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sa.enabled {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		if !sa.validateToken(parts[1]) {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (sa *SessionAuth) validateToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return sa.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil && token.Valid
}
