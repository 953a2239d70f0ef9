package team

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cw-prime/Payton-Place/internal/httpx"
	"github.com/cw-prime/Payton-Place/internal/middleware"
	"github.com/cw-prime/Payton-Place/internal/transport"
	"github.com/cw-prime/Payton-Place/internal/upload"
	"github.com/cw-prime/Payton-Place/internal/validation"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	manager *Manager
	val     *validation.Validator
	log     *slog.Logger
	uploads *upload.Store
	debug   bool
}

func NewHandler(manager *Manager, val *validation.Validator, log *slog.Logger, uploads *upload.Store, debug bool) *Handler {
	return &Handler{manager: manager, val: val, log: log, uploads: uploads, debug: debug}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.manager.List(ctx)
	if err != nil {
		log.Error("team list: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching team members", err, h.debug)
		return
	}

	log.Info("team list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	member, err := h.manager.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("team get: not found", slog.String("member_id", id))
			transport.WriteError(w, http.StatusNotFound, "Team member not found", nil)
			return
		}
		log.Error("team get: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching team member", err, h.debug)
		return
	}

	transport.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	if err := httpx.ParseForm(r); err != nil {
		log.Warn("team create: invalid form")
		transport.WriteError(w, http.StatusBadRequest, "invalid form data", nil)
		return
	}

	fh := httpx.FormFile(r, "image")
	if fh == nil {
		log.Warn("team create: missing image")
		transport.WriteError(w, http.StatusBadRequest, "Team member image is required", nil)
		return
	}

	req := CreateRequest{
		Name:  r.FormValue("name"),
		Role:  r.FormValue("role"),
		Bio:   r.FormValue("bio"),
		Email: r.FormValue("email"),
		Phone: r.FormValue("phone"),
	}
	if raw := r.FormValue("order"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			req.Order = n
		}
	}
	links, err := socialLinksFromForm(r)
	if err != nil {
		log.Warn("team create: bad socialLinks payload")
		transport.WriteError(w, http.StatusBadRequest, "socialLinks must be a JSON object", nil)
		return
	}
	req.SocialLinks = links

	url, err := h.uploads.SaveImage(fh)
	if err != nil {
		log.Warn("team create: image rejected", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, uploadErrorMessage(err), nil)
		return
	}
	req.ImageURL = url

	if err := h.val.Struct(req); err != nil {
		log.Warn("team create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	member, err := h.manager.Create(ctx, req)
	if err != nil {
		log.Error("team create: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error creating team member", err, h.debug)
		return
	}

	log.Info("team create: ok", slog.String("member_id", member.ID), slog.String("name", member.Name))
	transport.WriteJSON(w, http.StatusCreated, member)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	if err := httpx.ParseForm(r); err != nil {
		log.Warn("team update: invalid form")
		transport.WriteError(w, http.StatusBadRequest, "invalid form data", nil)
		return
	}

	var req UpdateRequest
	req.Name = httpx.FormPtr(r, "name")
	req.Role = httpx.FormPtr(r, "role")
	req.Bio = httpx.FormPtr(r, "bio")
	req.Email = httpx.FormPtr(r, "email")
	req.Phone = httpx.FormPtr(r, "phone")
	if raw := httpx.FormPtr(r, "order"); raw != nil {
		if n, err := strconv.Atoi(*raw); err == nil {
			req.Order = &n
		}
	}
	if _, ok := r.Form["socialLinks"]; ok {
		links, err := socialLinksFromForm(r)
		if err != nil {
			log.Warn("team update: bad socialLinks payload")
			transport.WriteError(w, http.StatusBadRequest, "socialLinks must be a JSON object", nil)
			return
		}
		if links == nil {
			links = &SocialLinks{}
		}
		req.SocialLinks = links
	}

	if fh := httpx.FormFile(r, "image"); fh != nil {
		url, err := h.uploads.SaveImage(fh)
		if err != nil {
			log.Warn("team update: image rejected", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, uploadErrorMessage(err), nil)
			return
		}
		req.ImageURL = &url
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("team update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	member, err := h.manager.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("team update: not found", slog.String("member_id", id))
			transport.WriteError(w, http.StatusNotFound, "Team member not found", nil)
			return
		}
		log.Error("team update: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error updating team member", err, h.debug)
		return
	}

	log.Info("team update: ok", slog.String("member_id", member.ID))
	transport.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.manager.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("team delete: not found", slog.String("member_id", id))
			transport.WriteError(w, http.StatusNotFound, "Team member not found", nil)
			return
		}
		log.Error("team delete: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error deleting team member", err, h.debug)
		return
	}

	log.Info("team delete: ok", slog.String("member_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"message": "Team member deleted successfully"})
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

// Admin forms submit socialLinks as a JSON-encoded string field.
func socialLinksFromForm(r *http.Request) (*SocialLinks, error) {
	raw := r.FormValue("socialLinks")
	if raw == "" {
		return nil, nil
	}
	var links SocialLinks
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil, err
	}
	return &links, nil
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
