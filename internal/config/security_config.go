package config

// AccessLevel is the session role a route requires.
type AccessLevel int

const (
	AccessPublic       AccessLevel = iota // No session needed
	AccessOrganization                    // Authenticated organization
	AccessAdmin                           // Platform administrator
	AccessAnyone                          // No session resolution at all
)

// RouteAccess maps "METHOD path-template" to the role it requires.
var RouteAccess = map[string]AccessLevel{
	// Onboarding - Public
	"POST /api/v1/ngo/register":    AccessPublic,
	"POST /api/v1/ngo/check-id":    AccessPublic,
	"POST /api/v1/ngo/credentials": AccessPublic,
	"POST /api/v1/ngo/login":       AccessPublic,
	"POST /api/v1/admin/login":     AccessPublic,
	"GET /api/v1/causes":           AccessPublic,

	// Logout works with a stale or broken bearer token
	"POST /api/v1/logout": AccessAnyone,

	// Organization
	"POST /api/v1/ngo/cause-requests": AccessOrganization,
	"GET /api/v1/ngo/cause-requests":  AccessOrganization,

	// Admin
	"GET /api/v1/admin/registrations":                AccessAdmin,
	"POST /api/v1/admin/registrations/{id}/approve":  AccessAdmin,
	"GET /api/v1/admin/cause-requests":               AccessAdmin,
	"POST /api/v1/admin/cause-requests/{id}/approve": AccessAdmin,
	"POST /api/v1/admin/causes":                      AccessAdmin,
	"GET /api/v1/admin/login-logs":                   AccessAdmin,
	"GET /api/v1/uploads/{name}":                     AccessAdmin,
}

// GetAccessLevel returns the access level for a route
func GetAccessLevel(method, pathTemplate string) AccessLevel {
	if level, exists := RouteAccess[method+" "+pathTemplate]; exists {
		return level
	}
	// Unknown routes need the strongest role
	return AccessAdmin
}
