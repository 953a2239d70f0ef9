package categories

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
	"github.com/cw-prime/Payton-Place/internal/validation"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
	debug   bool
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, debug bool) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
		debug:   debug,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	filter := ListFilter{Type: strings.TrimSpace(r.URL.Query().Get("type"))}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, filter)
	if err != nil {
		log.Error("categories list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching categories", err, h.debug)
		return
	}

	log.Info("categories list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("categories get: not found", slog.String("category_id", id))
			transport.WriteError(w, http.StatusNotFound, "Category not found", nil)
			return
		}
		log.Error("categories get: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching category", err, h.debug)
		return
	}

	transport.WriteJSON(w, http.StatusOK, category)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("categories create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("categories create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			log.Warn("categories create: duplicate slug", slog.String("slug", req.Slug))
			transport.WriteError(w, http.StatusConflict, "Category slug already exists", nil)
			return
		}
		log.Error("categories create: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error creating category", err, h.debug)
		return
	}

	log.Info("categories create: ok", slog.String("category_id", category.ID), slog.String("slug", category.Slug))
	transport.WriteJSON(w, http.StatusCreated, category)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req UpdateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("categories update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("categories update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("categories update: not found", slog.String("category_id", id))
			transport.WriteError(w, http.StatusNotFound, "Category not found", nil)
			return
		}
		if errors.Is(err, ErrDuplicateSlug) {
			transport.WriteError(w, http.StatusConflict, "Category slug already exists", nil)
			return
		}
		log.Error("categories update: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error updating category", err, h.debug)
		return
	}

	log.Info("categories update: ok", slog.String("category_id", category.ID))
	transport.WriteJSON(w, http.StatusOK, category)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("categories delete: not found", slog.String("category_id", id))
			transport.WriteError(w, http.StatusNotFound, "Category not found", nil)
			return
		}
		log.Error("categories delete: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error deleting category", err, h.debug)
		return
	}

	log.Info("categories delete: ok", slog.String("category_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
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
