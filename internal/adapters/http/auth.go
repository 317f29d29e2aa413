package httpadapter

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
	"github.com/aniketsingh1023/Astroshala/internal/observability"
)

// resolveIdentity extracts the user id from a Bearer token, if any. Identity
// is optional and non-blocking: a missing or invalid token yields an
// anonymous identity, never an error.
func (s *Server) resolveIdentity(r *http.Request) domain.UserID {
	if len(s.jwtSecret) == 0 {
		return ""
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		observability.LoggerFromContext(r.Context()).Warn("invalid bearer token, treating request as anonymous")
		return ""
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return ""
	}
	return domain.UserID(sub)
}
