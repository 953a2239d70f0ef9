package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cw-prime/Payton-Place/internal/cache"
	"github.com/cw-prime/Payton-Place/internal/httpx"
	"github.com/cw-prime/Payton-Place/internal/middleware"
	"github.com/cw-prime/Payton-Place/internal/transport"
	"github.com/cw-prime/Payton-Place/internal/upload"
	"github.com/cw-prime/Payton-Place/internal/validation"
	"github.com/go-chi/chi/v5"
)

const listCacheKey = "services:all"

type Handler struct {
	manager  *Manager
	val      *validation.Validator
	log      *slog.Logger
	uploads  *upload.Store
	cache    cache.Cache
	cacheTTL time.Duration
	debug    bool
}

func NewHandler(manager *Manager, val *validation.Validator, log *slog.Logger, uploads *upload.Store, c cache.Cache, cacheTTL time.Duration, debug bool) *Handler {
	return &Handler{
		manager:  manager,
		val:      val,
		log:      log,
		uploads:  uploads,
		cache:    c,
		cacheTTL: cacheTTL,
		debug:    debug,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	filter := ListFilter{Category: strings.TrimSpace(r.URL.Query().Get("category"))}

	if filter.Category == "" && h.cache != nil {
		if cached, ok, err := h.cache.Get(r.Context(), listCacheKey); err == nil && ok {
			log.Info("services list: cache hit")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.manager.List(ctx, filter)
	if err != nil {
		log.Error("services list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching services", err, h.debug)
		return
	}

	if filter.Category == "" && h.cache != nil {
		if payload, err := transport.Encode(items); err == nil {
			_ = h.cache.Set(r.Context(), listCacheKey, payload, h.cacheTTL)
		}
	}

	log.Info("services list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	service, err := h.manager.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("services get: not found", slog.String("service_id", id))
			transport.WriteError(w, http.StatusNotFound, "Service not found", nil)
			return
		}
		log.Error("services get: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching service", err, h.debug)
		return
	}

	transport.WriteJSON(w, http.StatusOK, service)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	if err := httpx.ParseForm(r); err != nil {
		log.Warn("services create: invalid form")
		transport.WriteError(w, http.StatusBadRequest, "invalid form data", nil)
		return
	}

	req := CreateRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Icon:        r.FormValue("icon"),
		Features:    r.Form["features"],
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("services create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if fh := httpx.FormFile(r, "image"); fh != nil {
		url, err := h.uploads.SaveImage(fh)
		if err != nil {
			log.Warn("services create: image rejected", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, uploadErrorMessage(err), nil)
			return
		}
		req.ImageURL = url
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	service, err := h.manager.Create(ctx, req)
	if err != nil {
		log.Error("services create: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error creating service", err, h.debug)
		return
	}

	h.invalidateCache(r.Context())
	log.Info("services create: ok", slog.String("service_id", service.ID), slog.String("name", service.Name))
	transport.WriteJSON(w, http.StatusCreated, service)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	if err := httpx.ParseForm(r); err != nil {
		log.Warn("services update: invalid form")
		transport.WriteError(w, http.StatusBadRequest, "invalid form data", nil)
		return
	}

	var req UpdateRequest
	req.Name = httpx.FormPtr(r, "name")
	req.Description = httpx.FormPtr(r, "description")
	req.Category = httpx.FormPtr(r, "category")
	req.Icon = httpx.FormPtr(r, "icon")
	if _, ok := r.Form["features"]; ok {
		req.Features = r.Form["features"]
		req.HasFeatures = true
	}

	if fh := httpx.FormFile(r, "image"); fh != nil {
		url, err := h.uploads.SaveImage(fh)
		if err != nil {
			log.Warn("services update: image rejected", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, uploadErrorMessage(err), nil)
			return
		}
		req.ImageURL = &url
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	service, err := h.manager.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("services update: not found", slog.String("service_id", id))
			transport.WriteError(w, http.StatusNotFound, "Service not found", nil)
			return
		}
		log.Error("services update: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error updating service", err, h.debug)
		return
	}

	h.invalidateCache(r.Context())
	log.Info("services update: ok", slog.String("service_id", service.ID))
	transport.WriteJSON(w, http.StatusOK, service)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.manager.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("services delete: not found", slog.String("service_id", id))
			transport.WriteError(w, http.StatusNotFound, "Service not found", nil)
			return
		}
		log.Error("services delete: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error deleting service", err, h.debug)
		return
	}

	h.invalidateCache(r.Context())
	log.Info("services delete: ok", slog.String("service_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "Service deleted successfully"})
}

func (h *Handler) invalidateCache(ctx context.Context) {
	if h.cache != nil {
		_ = h.cache.Delete(ctx, listCacheKey)
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

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrFileTooLarge):
		return "Uploaded file exceeds the size limit"
	case errors.Is(err, upload.ErrUnsupportedType):
		return "Only image files are allowed (jpeg, jpg, png, gif, webp)"
	default:
		return "Upload failed"
	}
}
