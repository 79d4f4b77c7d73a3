package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Myself7802/aatmiya-sabha-form/internal/service"
)

// Pinger проверяет доступность хранилища для /health (может отсутствовать).
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	sessionService service.SessionService
	adminService   service.AdminService
	exportService  service.ExportService
	pinger         Pinger
	logger         zerolog.Logger
}

func NewHandler(
	sessionService service.SessionService,
	adminService service.AdminService,
	exportService service.ExportService,
	pinger Pinger,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		sessionService: sessionService,
		adminService:   adminService,
		exportService:  exportService,
		pinger:         pinger,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.EndSession)
			r.Post("/verify", h.VerifyID)
			r.Post("/submit", h.Submit)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/login", h.AdminLogin)

				r.Group(func(r chi.Router) {
					r.Use(h.requireAdmin)
					r.Get("/submissions", h.ListSubmissions)
					r.Get("/pending", h.ListPending)
					r.Post("/reference/refresh", h.RefreshReference)
					r.Post("/exports", h.CreateExport)
				})
			})
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "form-service",
		"timestamp": time.Now().UTC(),
	}

	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("Store ping failed")
			response["status"] = "degraded"
			writeJSON(w, http.StatusServiceUnavailable, response)
			return
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// writeFailure отдает ошибку вместе с текущим состоянием сессии.
func writeFailure(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
		"data":    data,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAdminRequired), errors.Is(err, service.ErrInvalidPassphrase):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrAlreadySubmitted):
		return http.StatusConflict
	case errors.Is(err, service.ErrSchemaMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrStoreUnavailable), errors.Is(err, service.ErrExportDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error, data interface{}) {
	status := statusFor(err)
	message := err.Error()

	switch {
	case status == http.StatusInternalServerError:
		h.logger.Error().Err(err).Msg("Unexpected service error")
		message = "Internal server error"
	case status == http.StatusServiceUnavailable:
		h.logger.Error().Err(err).Msg("Store error")
	}

	if data != nil {
		writeFailure(w, status, message, data)
		return
	}
	writeError(w, status, message)
}
