package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessionService.Create(r.Context())
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    session,
	})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, nil)
		return
	}

	writeSuccess(w, session)
}

func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, nil)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Session ended",
	})
}

func (h *Handler) VerifyID(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessionService.Verify(r.Context(), chi.URLParam(r, "id"), &req)
	h.writeSessionResult(w, session, err)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessionService.Submit(r.Context(), chi.URLParam(r, "id"), &req)
	h.writeSessionResult(w, session, err)
}

func (h *Handler) writeSessionResult(w http.ResponseWriter, session *models.SessionResponse, err error) {
	if err == nil {
		writeSuccess(w, session)
		return
	}

	if session == nil {
		h.handleServiceError(w, err, nil)
		return
	}
	h.handleServiceError(w, err, session)
}
