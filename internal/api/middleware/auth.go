package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type subjectKeyType string

const SubjectKey subjectKeyType = "subject"

// OrgClaims is the bearer token payload. Orgs, when present, limits the
// token to those org ids.
type OrgClaims struct {
	Orgs []string `json:"orgs,omitempty"`
	jwt.RegisteredClaims
}

func (c *OrgClaims) allows(orgID string) bool {
	if len(c.Orgs) == 0 {
		return true
	}
	for _, o := range c.Orgs {
		if o == orgID {
			return true
		}
	}
	return false
}

// Auth validates an HMAC-signed Bearer JWT and stores its subject in the
// context. Routes with an {orgID} parameter also check the orgs claim.
func Auth(hmacSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				writeStatus(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			claims := &OrgClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimSpace(ah[len("Bearer "):]), claims, func(t *jwt.Token) (interface{}, error) {
				return hmacSecret, nil
			}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil || !token.Valid {
				writeStatus(w, r, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}
			if org := chi.URLParam(r, "orgID"); org != "" && !claims.allows(org) {
				writeStatus(w, r, http.StatusForbidden, "forbidden", "token not valid for org")
				return
			}
			ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSubject(ctx context.Context) string {
	if v, ok := ctx.Value(SubjectKey).(string); ok {
		return v
	}
	return ""
}
