package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Myself7802/aatmiya-sabha-form/internal/models"
)

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessionService.AdminLogin(r.Context(), chi.URLParam(r, "id"), &req)
	h.writeSessionResult(w, session, err)
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.sessionService.RequireAdmin(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.handleServiceError(w, err, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	response, err := h.adminService.ListSubmissions(r.Context())
	if err != nil {
		h.handleServiceError(w, err, nil)
		return
	}

	writeSuccess(w, response)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	response, err := h.adminService.ListPending(r.Context())
	if err != nil {
		h.handleServiceError(w, err, nil)
		return
	}

	writeSuccess(w, response)
}

func (h *Handler) RefreshReference(w http.ResponseWriter, r *http.Request) {
	count, err := h.adminService.RefreshReference(r.Context())
	if err != nil {
		h.handleServiceError(w, err, nil)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Reference data reloaded",
		"records": count,
	})
}

func (h *Handler) CreateExport(w http.ResponseWriter, r *http.Request) {
	var req models.ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.exportService.Export(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, nil)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}
