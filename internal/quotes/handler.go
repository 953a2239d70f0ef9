package quotes

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

// Notifier delivers the new-quote email. Implementations must be safe
// for concurrent use.
type Notifier interface {
	QuoteRequestReceived(ctx context.Context, quote QuoteRequest) error
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
		log.Warn("quotes submit: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "All fields are required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	quote, err := h.manager.Submit(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			log.Warn("quotes submit: missing fields")
			transport.WriteError(w, http.StatusBadRequest, "All fields are required", nil)
		case errors.Is(err, ErrInvalidProjectType):
			log.Warn("quotes submit: invalid project type")
			transport.WriteError(w, http.StatusBadRequest, "Project type must be residential, commercial or both", nil)
		case errors.Is(err, ErrBotVerification):
			log.Warn("quotes submit: bot verification failed")
			transport.WriteError(w, http.StatusBadRequest, "Bot verification failed. Please try again.", nil)
		default:
			log.Error("quotes submit: database error", slog.String("error", err.Error()))
			transport.WriteServerError(w, "Error submitting quote request", err, h.debug)
		}
		return
	}

	h.notify(quote)
	log.Info("quotes submit: ok", slog.String("quote_id", quote.ID))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":      "Quote request submitted successfully",
		"quoteRequest": quote,
	})
}

// notify runs off the request path; the quote is already persisted.
func (h *Handler) notify(quote QuoteRequest) {
	if h.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.notifier.QuoteRequestReceived(ctx, quote); err != nil {
			h.log.Warn("quotes notify: email failed",
				slog.String("quote_id", quote.ID),
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
		log.Error("quotes list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching quote requests", err, h.debug)
		return
	}

	log.Info("quotes list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("quotes status: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "Invalid quote status", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	quote, err := h.manager.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			log.Warn("quotes status: invalid value", slog.String("status", req.Status))
			transport.WriteError(w, http.StatusBadRequest, "Invalid quote status", nil)
		case errors.Is(err, ErrNotFound):
			log.Warn("quotes status: not found", slog.String("quote_id", id))
			transport.WriteError(w, http.StatusNotFound, "Quote request not found", nil)
		default:
			log.Error("quotes status: database error", slog.String("error", err.Error()))
			transport.WriteServerError(w, "Error updating quote request", err, h.debug)
		}
		return
	}

	log.Info("quotes status: ok", slog.String("quote_id", id), slog.String("status", quote.Status))
	transport.WriteJSON(w, http.StatusOK, quote)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.manager.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("quotes delete: not found", slog.String("quote_id", id))
			transport.WriteError(w, http.StatusNotFound, "Quote request not found", nil)
			return
		}
		log.Error("quotes delete: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error deleting quote request", err, h.debug)
		return
	}

	log.Info("quotes delete: ok", slog.String("quote_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "Quote request deleted successfully"})
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
