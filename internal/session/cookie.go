package session

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	isAuthKey   = "is_authenticated"
	roleKey     = "role"
	uniqueIDKey = "unique_id"
	orgNameKey  = "org_name"
	usernameKey = "username"
)

// CookieManager stores the session context in a signed, HttpOnly cookie.
type CookieManager struct {
	store sessions.Store
	name  string
}

type CookieOptions struct {
	Name   string
	Domain string
	Secure bool
	MaxAge int // seconds
}

// NewCookieManager builds a cookie store keyed by secret.
func NewCookieManager(secret string, opts CookieOptions) (*CookieManager, error) {
	if len(secret) < 32 {
		return nil, errors.New("session secret must be at least 32 characters")
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Domain:   opts.Domain,
		Path:     "/",
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	name := opts.Name
	if name == "" {
		name = "impactecho_session"
	}
	return &CookieManager{store: store, name: name}, nil
}

// Current returns the session context carried by r's cookie. A missing,
// tampered or expired cookie yields Anonymous.
func (m *CookieManager) Current(r *http.Request) Context {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return Anonymous
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return Anonymous
	}
	sc := Context{
		Role:     ParseRole(getString(sess, roleKey)),
		UniqueID: getString(sess, uniqueIDKey),
		OrgName:  getString(sess, orgNameKey),
		Username: getString(sess, usernameKey),
	}
	if sc.Role == RoleOrganization && sc.UniqueID == "" {
		return Anonymous
	}
	return sc
}

// Establish replaces whatever session r carried with sc.
func (m *CookieManager) Establish(w http.ResponseWriter, r *http.Request, sc Context) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[interface{}]interface{}{
		isAuthKey:   true,
		roleKey:     string(sc.Role),
		uniqueIDKey: sc.UniqueID,
		orgNameKey:  sc.OrgName,
		usernameKey: sc.Username,
	}
	return sess.Save(r, w)
}

// Clear expires the session cookie.
func (m *CookieManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func getString(sess *sessions.Session, key string) string {
	if v, ok := sess.Values[key].(string); ok {
		return v
	}
	return ""
}
