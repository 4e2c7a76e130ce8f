package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"impactecho-backend/internal/config"
	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/security"
	"impactecho-backend/internal/session"
)

// SessionResolver finds the caller's session: a bearer token first, then
// the session cookie.
type SessionResolver struct {
	tokens  security.TokenManager
	cookies *session.CookieManager
}

func NewSessionResolver(tokens security.TokenManager, cookies *session.CookieManager) *SessionResolver {
	return &SessionResolver{tokens: tokens, cookies: cookies}
}

// Resolve returns an error only for a bearer token that fails validation.
func (s *SessionResolver) Resolve(r *http.Request) (session.Context, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token := header
		// Remove Bearer prefix if present
		if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
			token = token[7:]
		}
		claims, err := s.tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			return session.Anonymous, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
		return contextFromClaims(claims), nil
	}
	return s.cookies.Current(r), nil
}

func contextFromClaims(c *security.SessionClaims) session.Context {
	switch session.ParseRole(c.Role) {
	case session.RoleAdmin:
		return session.Admin(c.Subject)
	case session.RoleOrganization:
		if c.UniqueID == "" {
			return session.Anonymous
		}
		return session.Organization(c.UniqueID, c.OrgName, "")
	default:
		return session.Anonymous
	}
}

// Authorize resolves the session, checks it against the matched route's
// access level and stores it in the request context.
func (s *SessionResolver) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.AccessAdmin
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				level = config.GetAccessLevel(r.Method, tmpl)
			}
		}

		if level == config.AccessAnyone {
			next.ServeHTTP(w, r)
			return
		}

		sc, err := s.Resolve(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := checkAccess(level, sc); err != nil {
			logger.WarnContext(r.Context(), "Access denied", "method", r.Method, "path", r.URL.Path, "role", sc.Role)
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sc)))
	})
}

// checkAccess answers every missing role, anonymous included, with an
// authorization error.
func checkAccess(level config.AccessLevel, sc session.Context) error {
	switch level {
	case config.AccessPublic:
		return nil
	case config.AccessOrganization:
		if !sc.IsOrganization() {
			return fmt.Errorf("%w: organization login required", domain.ErrForbidden)
		}
	default:
		if !sc.IsAdmin() {
			return fmt.Errorf("%w: administrator role required", domain.ErrForbidden)
		}
	}
	return nil
}
