package contact

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cw-prime/Payton-Place/internal/httpx"
	"github.com/cw-prime/Payton-Place/internal/middleware"
	"github.com/cw-prime/Payton-Place/internal/transport"
	"github.com/go-chi/chi/v5"
)

// Notifier delivers the new-inquiry email. Implementations must be
// safe for concurrent use.
type Notifier interface {
	ContactInquiryReceived(ctx context.Context, inquiry Inquiry) error
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
		log.Warn("contact submit: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "Name, email, and message are required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	inquiry, err := h.manager.Submit(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			log.Warn("contact submit: missing fields")
			transport.WriteError(w, http.StatusBadRequest, "Name, email, and message are required", nil)
		case errors.Is(err, ErrBotVerification):
			log.Warn("contact submit: bot verification failed")
			transport.WriteError(w, http.StatusBadRequest, "Bot verification failed. Please try again.", nil)
		default:
			log.Error("contact submit: database error", slog.String("error", err.Error()))
			transport.WriteServerError(w, "Error submitting contact inquiry", err, h.debug)
		}
		return
	}

	h.notify(inquiry)
	log.Info("contact submit: ok", slog.String("inquiry_id", inquiry.ID))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Contact inquiry submitted successfully",
		"inquiry": inquiry,
	})
}

// notify sends the admin email off the request path. The inquiry is
// already persisted; a failed send is only a log line.
func (h *Handler) notify(inquiry Inquiry) {
	if h.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.notifier.ContactInquiryReceived(ctx, inquiry); err != nil {
			h.log.Warn("contact notify: email failed",
				slog.String("inquiry_id", inquiry.ID),
				slog.String("error", err.Error()))
		}
	}()
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.manager.List(ctx)
	if err != nil {
		log.Error("contact list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching inquiries", err, h.debug)
		return
	}

	log.Info("contact list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact status: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "Invalid inquiry status", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	inquiry, err := h.manager.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			log.Warn("contact status: invalid value", slog.String("status", req.Status))
			transport.WriteError(w, http.StatusBadRequest, "Invalid inquiry status", nil)
		case errors.Is(err, ErrNotFound):
			log.Warn("contact status: not found", slog.String("inquiry_id", id))
			transport.WriteError(w, http.StatusNotFound, "Contact inquiry not found", nil)
		default:
			log.Error("contact status: database error", slog.String("error", err.Error()))
			transport.WriteServerError(w, "Error updating contact inquiry", err, h.debug)
		}
		return
	}

	log.Info("contact status: ok", slog.String("inquiry_id", id), slog.String("status", inquiry.Status))
	transport.WriteJSON(w, http.StatusOK, inquiry)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.manager.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("contact delete: not found", slog.String("inquiry_id", id))
			transport.WriteError(w, http.StatusNotFound, "Contact inquiry not found", nil)
			return
		}
		log.Error("contact delete: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error deleting contact inquiry", err, h.debug)
		return
	}

	log.Info("contact delete: ok", slog.String("inquiry_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "Contact inquiry deleted successfully"})
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
