package http

import (
	"net/http"

	"impactecho-backend/internal/service"
)

type CauseHandler struct {
	causes service.CauseService
}

func NewCauseHandler(causes service.CauseService) *CauseHandler {
	return &CauseHandler{causes: causes}
}

type causeRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	GoalAmount     int64  `json:"goal_amount"`
	ImageReference string `json:"image"`
}

func (c causeRequest) input() service.CauseInput {
	return service.CauseInput{
		Title:          c.Title,
		Description:    c.Description,
		GoalAmount:     c.GoalAmount,
		ImageReference: c.ImageReference,
	}
}

func (h *CauseHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req causeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.causes.SubmitCauseRequest(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CauseHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.causes.ListMyCauseRequests(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CauseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.causes.ListCauses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
