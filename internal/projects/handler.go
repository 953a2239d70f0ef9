package projects

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

const (
	listCacheKey = "projects:all"
	maxImages    = 10
)

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
	filter := ListFilter{
		Category:     strings.TrimSpace(r.URL.Query().Get("category")),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
	}
	unfiltered := filter.Category == "" && !filter.FeaturedOnly

	if unfiltered && h.cache != nil {
		if cached, ok, err := h.cache.Get(r.Context(), listCacheKey); err == nil && ok {
			log.Info("projects list: cache hit")
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
		log.Error("projects list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching projects", err, h.debug)
		return
	}

	if unfiltered && h.cache != nil {
		if payload, err := transport.Encode(items); err == nil {
			_ = h.cache.Set(r.Context(), listCacheKey, payload, h.cacheTTL)
		}
	}

	log.Info("projects list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	project, err := h.manager.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("projects get: not found", slog.String("project_id", id))
			transport.WriteError(w, http.StatusNotFound, "Project not found", nil)
			return
		}
		log.Error("projects get: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching project", err, h.debug)
		return
	}

	transport.WriteJSON(w, http.StatusOK, project)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	if err := httpx.ParseForm(r); err != nil {
		log.Warn("projects create: invalid form")
		transport.WriteError(w, http.StatusBadRequest, "invalid form data", nil)
		return
	}

	req := CreateRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Type:        r.FormValue("type"),
		Featured:    r.FormValue("featured") == "true",
		Details:     detailsFromForm(r),
		Testimonial: testimonialFromForm(r),
		Tags:        r.Form["tags"],
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("projects create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	files := httpx.FormFiles(r, "images")
	if len(files) > maxImages {
		log.Warn("projects create: too many images", slog.Int("count", len(files)))
		transport.WriteError(w, http.StatusBadRequest, "A project can have at most 10 images", nil)
		return
	}
	for _, fh := range files {
		url, err := h.uploads.SaveImage(fh)
		if err != nil {
			log.Warn("projects create: image rejected", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, uploadErrorMessage(err), nil)
			return
		}
		req.Images = append(req.Images, url)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	project, err := h.manager.Create(ctx, req)
	if err != nil {
		log.Error("projects create: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error creating project", err, h.debug)
		return
	}

	h.invalidateCache(r.Context())
	log.Info("projects create: ok", slog.String("project_id", project.ID), slog.String("title", project.Title))
	transport.WriteJSON(w, http.StatusCreated, project)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	if err := httpx.ParseForm(r); err != nil {
		log.Warn("projects update: invalid form")
		transport.WriteError(w, http.StatusBadRequest, "invalid form data", nil)
		return
	}

	var req UpdateRequest
	req.Title = httpx.FormPtr(r, "title")
	req.Description = httpx.FormPtr(r, "description")
	req.Category = httpx.FormPtr(r, "category")
	req.Type = httpx.FormPtr(r, "type")
	if v := httpx.FormPtr(r, "featured"); v != nil {
		featured := *v == "true"
		req.Featured = &featured
	}
	if hasDetailFields(r) {
		details := detailsFromForm(r)
		req.Details = &details
	}
	if t := testimonialFromForm(r); t != nil {
		req.Testimonial = t
	}
	if _, ok := r.Form["tags"]; ok {
		req.Tags = r.Form["tags"]
		req.HasTags = true
	}
	if _, ok := r.Form["existingImages"]; ok {
		req.ExistingImages = r.Form["existingImages"]
		req.HasExisting = true
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("projects update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	files := httpx.FormFiles(r, "images")
	if len(files) > maxImages {
		log.Warn("projects update: too many images", slog.Int("count", len(files)))
		transport.WriteError(w, http.StatusBadRequest, "A project can have at most 10 images", nil)
		return
	}
	for _, fh := range files {
		url, err := h.uploads.SaveImage(fh)
		if err != nil {
			log.Warn("projects update: image rejected", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, uploadErrorMessage(err), nil)
			return
		}
		req.NewImages = append(req.NewImages, url)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	project, err := h.manager.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("projects update: not found", slog.String("project_id", id))
			transport.WriteError(w, http.StatusNotFound, "Project not found", nil)
			return
		}
		log.Error("projects update: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error updating project", err, h.debug)
		return
	}

	h.invalidateCache(r.Context())
	log.Info("projects update: ok", slog.String("project_id", project.ID))
	transport.WriteJSON(w, http.StatusOK, project)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.manager.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("projects delete: not found", slog.String("project_id", id))
			transport.WriteError(w, http.StatusNotFound, "Project not found", nil)
			return
		}
		log.Error("projects delete: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error deleting project", err, h.debug)
		return
	}

	h.invalidateCache(r.Context())
	log.Info("projects delete: ok", slog.String("project_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
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

var detailFields = []string{"details[location]", "details[completionDate]", "details[duration]", "details[budget]", "details[client]"}

func hasDetailFields(r *http.Request) bool {
	for _, key := range detailFields {
		if _, ok := r.Form[key]; ok {
			return true
		}
	}
	return false
}

func detailsFromForm(r *http.Request) Details {
	d := Details{
		Location: strings.TrimSpace(r.FormValue("details[location]")),
		Duration: strings.TrimSpace(r.FormValue("details[duration]")),
		Budget:   strings.TrimSpace(r.FormValue("details[budget]")),
		Client:   strings.TrimSpace(r.FormValue("details[client]")),
	}
	if raw := strings.TrimSpace(r.FormValue("details[completionDate]")); raw != "" {
		if ts, err := parseDate(raw); err == nil {
			d.CompletionDate = &ts
		}
	}
	return d
}

func testimonialFromForm(r *http.Request) *Testimonial {
	t := Testimonial{
		Text:   strings.TrimSpace(r.FormValue("testimonial[text]")),
		Author: strings.TrimSpace(r.FormValue("testimonial[author]")),
		Role:   strings.TrimSpace(r.FormValue("testimonial[role]")),
	}
	if t.Text == "" && t.Author == "" && t.Role == "" {
		return nil
	}
	return &t
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
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
