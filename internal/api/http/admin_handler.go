package http

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/service"
)

type AdminHandler struct {
	admin service.AdminService
}

func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrValidation, raw)
	}
	return int32(id), nil
}

func (h *AdminHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	list, err := h.admin.ListRegistrations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type approveRegistrationResponse struct {
	Success  bool   `json:"success"`
	UniqueID string `json:"unique_id"`
}

func (h *AdminHandler) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	uniqueID, err := h.admin.ApproveRegistration(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, approveRegistrationResponse{Success: true, UniqueID: uniqueID})
}

func (h *AdminHandler) ListCauseRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.admin.ListCauseRequests(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type approveCauseResponse struct {
	Success bool  `json:"success"`
	CauseID int32 `json:"cause_id"`
}

func (h *AdminHandler) ApproveCauseRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	causeID, err := h.admin.ApproveCauseRequest(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, approveCauseResponse{Success: true, CauseID: causeID})
}

func (h *AdminHandler) CreateCause(w http.ResponseWriter, r *http.Request) {
	var req causeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cause, err := h.admin.CreateCauseDirect(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cause)
}

func (h *AdminHandler) ListLoginLogs(w http.ResponseWriter, r *http.Request) {
	list, err := h.admin.ListLoginLogs(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Download streams a stored registration document as an attachment.
func (h *AdminHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	file, err := h.admin.OpenDocument(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Cache-Control", "private, no-store")
	if _, err := io.Copy(w, file); err != nil {
		logger.WarnContext(r.Context(), "Document stream interrupted", "name", name, "error", err)
	}
}
