package settings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cw-prime/Payton-Place/internal/httpx"
	"github.com/cw-prime/Payton-Place/internal/middleware"
	"github.com/cw-prime/Payton-Place/internal/transport"
	"github.com/cw-prime/Payton-Place/internal/upload"
)

type Handler struct {
	manager *Manager
	log     *slog.Logger
	uploads *upload.Store
	debug   bool
}

func NewHandler(manager *Manager, log *slog.Logger, uploads *upload.Store, debug bool) *Handler {
	return &Handler{manager: manager, log: log, uploads: uploads, debug: debug}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.manager.Get(ctx)
	if err != nil {
		log.Error("settings get: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching site settings", err, h.debug)
		return
	}

	transport.WriteJSON(w, http.StatusOK, settings)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if err := httpx.ParseForm(r); err != nil {
		log.Warn("settings update: invalid form")
		transport.WriteError(w, http.StatusBadRequest, "invalid form data", nil)
		return
	}

	req := UpdateRequest{
		HeroMediaType:   httpx.FormPtr(r, "heroMediaType"),
		HeroImageURL:    httpx.FormPtr(r, "heroImageUrl"),
		HeroVideoURL:    httpx.FormPtr(r, "heroVideoUrl"),
		HeroHeadline:    httpx.FormPtr(r, "heroHeadline"),
		HeroSubheadline: httpx.FormPtr(r, "heroSubheadline"),
	}

	if fh := httpx.FormFile(r, "heroImage"); fh != nil {
		url, err := h.uploads.SaveImage(fh)
		if err != nil {
			log.Warn("settings update: hero image rejected", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, uploadErrorMessage(err, "image"), nil)
			return
		}
		req.UploadedImageURL = url
		log.Info("settings update: new hero image", slog.String("url", url))
	}

	if fh := httpx.FormFile(r, "heroVideo"); fh != nil {
		url, err := h.uploads.SaveVideo(fh)
		if err != nil {
			log.Warn("settings update: hero video rejected", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadRequest, uploadErrorMessage(err, "video"), nil)
			return
		}
		req.UploadedVideoURL = url
		log.Info("settings update: new hero video", slog.String("url", url))
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	settings, err := h.manager.Update(ctx, req)
	if err != nil {
		if errors.Is(err, ErrInvalidMediaType) {
			log.Warn("settings update: invalid media type")
			transport.WriteError(w, http.StatusBadRequest, "heroMediaType must be image or video", nil)
			return
		}
		log.Error("settings update: database error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error updating site settings", err, h.debug)
		return
	}

	log.Info("settings update: ok", slog.String("media_type", settings.HeroMediaType))
	transport.WriteJSON(w, http.StatusOK, settings)
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

func uploadErrorMessage(err error, kind string) string {
	switch {
	case errors.Is(err, upload.ErrFileTooLarge):
		return "Uploaded file exceeds the size limit"
	case errors.Is(err, upload.ErrUnsupportedType):
		if kind == "video" {
			return "Only video files are allowed (mp4, webm, mov, avi)"
		}
		return "Only image files are allowed (jpeg, jpg, png, gif, webp)"
	default:
		return "Upload failed"
	}
}
