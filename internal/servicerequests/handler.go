package servicerequests

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cw-prime/Payton-Place/internal/httpx"
	"github.com/cw-prime/Payton-Place/internal/middleware"
	"github.com/cw-prime/Payton-Place/internal/transport"
	"github.com/go-chi/chi/v5"
)

// Notifier delivers the new-request email. Implementations must be
// safe for concurrent use.
type Notifier interface {
	ServiceRequestReceived(ctx context.Context, request ServiceRequest) error
}

type Handler struct {
	manager  *Manager
	log      *slog.Logger
	notifier Notifier
	debug    bool
}

func NewHandler(manager *Manager, log *slog.Logger, notifier Notifier, debug bool) *Handler {
	return &Handler{manager: manager, log: log, notifier: notifier, debug: debug}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req SubmitRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("service requests submit: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	request, err := h.manager.Submit(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			log.Warn("service requests submit: missing fields")
			transport.WriteError(w, http.StatusBadRequest, "Name, email, phone, serviceId and message are required", nil)
		case errors.Is(err, ErrInvalidContactPref):
			log.Warn("service requests submit: invalid contact method")
			transport.WriteError(w, http.StatusBadRequest, "Preferred contact method must be email, phone or either", nil)
		case errors.Is(err, ErrBotVerification):
			log.Warn("service requests submit: bot verification failed")
			transport.WriteError(w, http.StatusBadRequest, "Bot verification failed. Please try again.", nil)
		case errors.Is(err, ErrInvalidService):
			log.Warn("service requests submit: invalid serviceId")
			transport.WriteError(w, http.StatusBadRequest, "Selected service is invalid.", nil)
		case errors.Is(err, ErrServiceNotFound):
			log.Warn("service requests submit: unknown serviceId")
			transport.WriteError(w, http.StatusBadRequest, "Selected service could not be found.", nil)
		default:
			log.Error("service requests submit: database error", slog.String("error", err.Error()))
			transport.WriteServerError(w, "Error creating service request", err, h.debug)
		}
		return
	}

	h.notify(request)
	log.Info("service requests submit: ok", slog.String("request_id_doc", request.ID))
	transport.WriteJSON(w, http.StatusCreated, request)
}

// notify runs off the request path; the document is already persisted.
func (h *Handler) notify(request ServiceRequest) {
	if h.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.notifier.ServiceRequestReceived(ctx, request); err != nil {
			h.log.Warn("service requests notify: email failed",
				slog.String("request_id_doc", request.ID),
				slog.String("error", err.Error()))
		}
	}()
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := h.manager.List(ctx, status)
	if err != nil {
		log.Error("service requests list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching service requests", err, h.debug)
		return
	}

	log.Info("service requests list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	request, err := h.manager.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("service requests get: not found", slog.String("request_id_doc", id))
			transport.WriteError(w, http.StatusNotFound, "Service request not found", nil)
			return
		}
		log.Error("service requests get: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching service request", err, h.debug)
		return
	}

	transport.WriteJSON(w, http.StatusOK, request)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("service requests status: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "Invalid service request status", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	request, err := h.manager.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			log.Warn("service requests status: invalid value", slog.String("status", req.Status))
			transport.WriteError(w, http.StatusBadRequest, "Invalid service request status", nil)
		case errors.Is(err, ErrNotFound):
			log.Warn("service requests status: not found", slog.String("request_id_doc", id))
			transport.WriteError(w, http.StatusNotFound, "Service request not found", nil)
		default:
			log.Error("service requests status: database error", slog.String("error", err.Error()))
			transport.WriteServerError(w, "Error updating service request", err, h.debug)
		}
		return
	}

	log.Info("service requests status: ok", slog.String("request_id_doc", id), slog.String("status", request.Status))
	transport.WriteJSON(w, http.StatusOK, request)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.manager.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("service requests delete: not found", slog.String("request_id_doc", id))
			transport.WriteError(w, http.StatusNotFound, "Service request not found", nil)
			return
		}
		log.Error("service requests delete: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error deleting service request", err, h.debug)
		return
	}

	log.Info("service requests delete: ok", slog.String("request_id_doc", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "Service request deleted successfully"})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
