package reviews

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cw-prime/Payton-Place/internal/httpx"
	"github.com/cw-prime/Payton-Place/internal/middleware"
	"github.com/cw-prime/Payton-Place/internal/transport"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	manager *Manager
	log     *slog.Logger
	debug   bool
}

func NewHandler(manager *Manager, log *slog.Logger, debug bool) *Handler {
	return &Handler{manager: manager, log: log, debug: debug}
}

// Submit accepts a public review; it lands in the moderation queue as
// pending.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req SubmitRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("reviews submit: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "Invalid review submission. Please check your entries.", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reviewID, err := h.manager.Submit(ctx, req)
	if err != nil {
		var inv *InvalidError
		if errors.As(err, &inv) {
			log.Warn("reviews submit: rejected", slog.String("reason", inv.Message))
			transport.WriteError(w, http.StatusBadRequest, inv.Message, nil)
			return
		}
		log.Error("reviews submit: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Failed to submit review", err, h.debug)
		return
	}

	log.Info("reviews submit: ok", slog.String("review_id", reviewID))
	transport.WriteJSON(w, http.StatusCreated, map[string]string{
		"message":  "Thank you! Your review has been submitted and is awaiting approval.",
		"reviewId": reviewID,
	})
}

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	values := r.URL.Query()

	page, limit := httpx.ParsePageLimit(values, 10, 50)
	q := PublicQuery{
		ServiceID:    strings.TrimSpace(values.Get("serviceId")),
		FeaturedOnly: values.Get("featured") == "true",
		Page:         Page{Number: page, Limit: limit},
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.manager.PublicList(ctx, q)
	if err != nil {
		log.Error("reviews public list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Failed to load reviews", err, h.debug)
		return
	}

	log.Info("reviews public list: ok", slog.Int("count", len(result.Data)))
	transport.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	values := r.URL.Query()

	page, limit := httpx.ParsePageLimit(values, 20, 100)
	q := AdminQuery{
		Status:    strings.TrimSpace(values.Get("status")),
		ServiceID: strings.TrimSpace(values.Get("serviceId")),
		Search:    values.Get("search"),
		Sort:      strings.TrimSpace(values.Get("sort")),
		Page:      Page{Number: page, Limit: limit},
	}
	if raw := strings.TrimSpace(values.Get("minRating")); raw != "" {
		if rating, err := strconv.ParseFloat(raw, 64); err == nil {
			q.MinRating = &rating
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.manager.AdminListReviews(ctx, q)
	if err != nil {
		log.Error("reviews admin list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Failed to load reviews for moderation", err, h.debug)
		return
	}

	log.Info("reviews admin list: ok", slog.Int("count", len(result.Data)), slog.Int64("total", result.Pagination.Total))
	transport.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("reviews status: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "Invalid review status", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	review, err := h.manager.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		h.writeUpdateError(w, log, "reviews status", id, err, "Failed to update review status")
		return
	}

	log.Info("reviews status: ok", slog.String("review_id", id), slog.String("status", review.Status))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Review status updated",
		"data":    review,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("reviews update: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	review, err := h.manager.Update(ctx, id, req)
	if err != nil {
		h.writeUpdateError(w, log, "reviews update", id, err, "Failed to update review")
		return
	}

	log.Info("reviews update: ok", slog.String("review_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Review updated successfully",
		"data":    review,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.manager.Delete(ctx, id); err != nil {
		h.writeUpdateError(w, log, "reviews delete", id, err, "Failed to delete review")
		return
	}

	log.Info("reviews delete: ok", slog.String("review_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "Review deleted successfully"})
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	analytics, err := h.manager.Analytics(ctx)
	if err != nil {
		log.Error("reviews analytics: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Failed to load review analytics", err, h.debug)
		return
	}

	log.Info("reviews analytics: ok", slog.Int64("total", analytics.Totals.All))
	transport.WriteJSON(w, http.StatusOK, analytics)
}

func (h *Handler) writeUpdateError(w http.ResponseWriter, log *slog.Logger, op, id string, err error, serverMessage string) {
	var inv *InvalidError
	switch {
	case errors.As(err, &inv):
		log.Warn(op+": rejected", slog.String("review_id", id), slog.String("reason", inv.Message))
		transport.WriteError(w, http.StatusBadRequest, inv.Message, nil)
	case errors.Is(err, ErrNotFound):
		log.Warn(op+": not found", slog.String("review_id", id))
		transport.WriteError(w, http.StatusNotFound, "Review not found", nil)
	default:
		log.Error(op+": database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, serverMessage, err, h.debug)
	}
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
