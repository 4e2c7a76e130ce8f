package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"impactecho-backend/internal/metrics"
)

// Routes bundles everything the router dispatches to.
type Routes struct {
	Onboarding   *OnboardingHandler
	Auth         *AuthHandler
	Causes       *CauseHandler
	Admin        *AdminHandler
	Health       *HealthHandler
	Sessions     *SessionResolver
	Limiter      *LoginLimiter
	Metrics      *metrics.Metrics
	MaxBodyBytes int64
}

// NewRouter registers the API under /api/v1 behind session authorization and
// the ops endpoints at the root.
func NewRouter(rt Routes) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestID, Logging, SecurityHeaders, rt.Metrics.Instrument(routeName))

	router.HandleFunc("/healthz", rt.Health.Live).Methods("GET")
	router.HandleFunc("/readyz", rt.Health.Ready).Methods("GET")
	router.Handle("/metrics", rt.Metrics.Handler()).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(MaxBodyBytes(rt.MaxBodyBytes), rt.Sessions.Authorize)

	// Onboarding
	api.HandleFunc("/ngo/register", rt.Onboarding.Register).Methods("POST")
	api.HandleFunc("/ngo/check-id", rt.Onboarding.CheckID).Methods("POST")
	api.HandleFunc("/ngo/credentials", rt.Onboarding.CreateCredentials).Methods("POST")

	// Sessions
	api.HandleFunc("/ngo/login", rt.Limiter.Wrap(rt.Auth.Login)).Methods("POST")
	api.HandleFunc("/admin/login", rt.Limiter.Wrap(rt.Auth.AdminLogin)).Methods("POST")
	api.HandleFunc("/logout", rt.Auth.Logout).Methods("POST")

	// Organization
	api.HandleFunc("/ngo/cause-requests", rt.Causes.SubmitRequest).Methods("POST")
	api.HandleFunc("/ngo/cause-requests", rt.Causes.MyRequests).Methods("GET")

	// Public catalog
	api.HandleFunc("/causes", rt.Causes.List).Methods("GET")

	// Admin
	api.HandleFunc("/admin/registrations", rt.Admin.ListRegistrations).Methods("GET")
	api.HandleFunc("/admin/registrations/{id}/approve", rt.Admin.ApproveRegistration).Methods("POST")
	api.HandleFunc("/admin/cause-requests", rt.Admin.ListCauseRequests).Methods("GET")
	api.HandleFunc("/admin/cause-requests/{id}/approve", rt.Admin.ApproveCauseRequest).Methods("POST")
	api.HandleFunc("/admin/causes", rt.Admin.CreateCause).Methods("POST")
	api.HandleFunc("/admin/login-logs", rt.Admin.ListLoginLogs).Methods("GET")
	api.HandleFunc("/uploads/{name}", rt.Admin.Download).Methods("GET")

	return router
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
