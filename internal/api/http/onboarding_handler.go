package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"impactecho-backend/internal/domain"
	"impactecho-backend/internal/service"
)

// multipartMemory is how much of a registration form is kept in memory
// before attachments spill to temp files.
const multipartMemory = 8 << 20

type OnboardingHandler struct {
	onboarding  service.OnboardingService
	credentials service.CredentialService
}

func NewOnboardingHandler(onboarding service.OnboardingService, credentials service.CredentialService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding, credentials: credentials}
}

// Register accepts multipart/form-data with org_name, contact_person,
// contact_email and any number of "files" parts.
func (h *OnboardingHandler) Register(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: unreadable form: %v", domain.ErrValidation, err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	input := service.RegistrationInput{
		OrgName:       r.FormValue("org_name"),
		ContactPerson: r.FormValue("contact_person"),
		ContactEmail:  r.FormValue("contact_email"),
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				writeError(w, r, fmt.Errorf("%w: open upload: %v", domain.ErrPersistence, err))
				return
			}
			opened = append(opened, f)
			input.Documents = append(input.Documents, service.Upload{Name: fh.Filename, Content: f})
		}
	}

	if err := h.onboarding.SubmitRegistration(r.Context(), input); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, message{Success: true, Message: "Registration submitted successfully"})
}

type checkIDRequest struct {
	UniqueID string `json:"unique_id"`
}

func (h *OnboardingHandler) CheckID(w http.ResponseWriter, r *http.Request) {
	var req checkIDRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	status, err := h.credentials.CheckIdentifier(r.Context(), req.UniqueID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type createCredentialsRequest struct {
	UniqueID string `json:"unique_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *OnboardingHandler) CreateCredentials(w http.ResponseWriter, r *http.Request) {
	var req createCredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.credentials.CreateCredentials(r.Context(), req.UniqueID, req.Username, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, message{Success: true, Message: "Credentials created successfully"})
}
