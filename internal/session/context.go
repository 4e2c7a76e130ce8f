// Package session carries the acting party's role through a request and
// persists it in a signed cookie between requests.
package session

import "context"

type Role string

const (
	RoleNone         Role = "none"
	RoleAdmin        Role = "admin"
	RoleOrganization Role = "organization"
)

// Context is who is acting. UniqueID and OrgName are set only for the
// organization role.
type Context struct {
	Role     Role
	UniqueID string
	OrgName  string
	Username string
}

// Anonymous is the context of an unauthenticated caller.
var Anonymous = Context{Role: RoleNone}

func Admin(username string) Context {
	return Context{Role: RoleAdmin, Username: username}
}

func Organization(uniqueID, orgName, username string) Context {
	return Context{Role: RoleOrganization, UniqueID: uniqueID, OrgName: orgName, Username: username}
}

func (c Context) IsAdmin() bool { return c.Role == RoleAdmin }

func (c Context) IsOrganization() bool {
	return c.Role == RoleOrganization && c.UniqueID != ""
}

// ParseRole maps a stored role name; unknown names are RoleNone.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleOrganization:
		return RoleOrganization
	default:
		return RoleNone
	}
}

type ctxKey struct{}

// WithContext attaches the session context to ctx.
func WithContext(ctx context.Context, sc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext returns the attached session context, or Anonymous.
func FromContext(ctx context.Context) Context {
	if sc, ok := ctx.Value(ctxKey{}).(Context); ok {
		return sc
	}
	return Anonymous
}
