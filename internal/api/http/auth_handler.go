package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/security"
	"impactecho-backend/internal/service"
	"impactecho-backend/internal/session"
)

type AuthHandler struct {
	auth     service.AuthService
	tokens   security.TokenManager
	cookies  *session.CookieManager
	tokenTTL time.Duration
}

func NewAuthHandler(auth service.AuthService, tokens security.TokenManager, cookies *session.CookieManager, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, cookies: cookies, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success     bool   `json:"success"`
	Role        string `json:"role"`
	UniqueID    string `json:"unique_id,omitempty"`
	OrgName     string `json:"org_name,omitempty"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.Authenticate)
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.AuthenticateAdmin)
}

type authenticateFunc func(ctx context.Context, username, secret string) (session.Context, error)

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, authenticate authenticateFunc) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sc, err := authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(string(sc.Role), sc.UniqueID, sc.OrgName)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: issue token: %v", domain.ErrPersistence, err))
		return
	}
	if err := h.cookies.Establish(w, r, sc); err != nil {
		writeError(w, r, fmt.Errorf("%w: establish session: %v", domain.ErrPersistence, err))
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success:     true,
		Role:        string(sc.Role),
		UniqueID:    sc.UniqueID,
		OrgName:     sc.OrgName,
		AccessToken: token,
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}

// Logout clears the cookie session. Bearer tokens simply expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.cookies.Clear(w, r); err != nil {
		logger.WarnContext(r.Context(), "Failed to clear session", "error", err)
	}
	writeJSON(w, http.StatusOK, message{Success: true})
}
