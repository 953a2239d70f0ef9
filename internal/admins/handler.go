package admins

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cw-prime/Payton-Place/internal/httpx"
	"github.com/cw-prime/Payton-Place/internal/middleware"
	"github.com/cw-prime/Payton-Place/internal/transport"
)

type Handler struct {
	manager *Manager
	log     *slog.Logger
	debug   bool
}

func NewHandler(manager *Manager, log *slog.Logger, debug bool) *Handler {
	return &Handler{manager: manager, log: log, debug: debug}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("auth login: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resp, err := h.manager.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			log.Warn("auth login: missing credentials")
			transport.WriteError(w, http.StatusBadRequest, "Email and password are required", nil)
		case errors.Is(err, ErrInvalidCredentials):
			log.Warn("auth login: invalid credentials", slog.String("email", req.Email))
			transport.WriteError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		default:
			log.Error("auth login: error", slog.String("error", err.Error()))
			transport.WriteServerError(w, "Error logging in", err, h.debug)
		}
		return
	}

	log.Info("auth login: ok", slog.String("admin_id", resp.Admin.ID), slog.String("role", resp.Admin.Role))
	transport.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req RegisterRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("auth register: malformed body")
		transport.WriteError(w, http.StatusBadRequest, "Email, password, and name are required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resp, err := h.manager.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			log.Warn("auth register: missing fields")
			transport.WriteError(w, http.StatusBadRequest, "Email, password, and name are required", nil)
		case errors.Is(err, ErrAlreadyExists):
			log.Warn("auth register: duplicate email", slog.String("email", req.Email))
			transport.WriteError(w, http.StatusBadRequest, "Admin already exists", nil)
		default:
			log.Error("auth register: error", slog.String("error", err.Error()))
			transport.WriteServerError(w, "Error registering admin", err, h.debug)
		}
		return
	}

	log.Info("auth register: ok", slog.String("admin_id", resp.Admin.ID))
	transport.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	claims := middleware.AdminFromContext(r.Context())
	if claims == nil {
		transport.WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	admin, err := h.manager.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("auth me: not found", slog.String("admin_id", claims.AdminID))
			transport.WriteError(w, http.StatusNotFound, "Admin not found", nil)
			return
		}
		log.Error("auth me: error", slog.String("error", err.Error()))
		transport.WriteServerError(w, "Error fetching admin", err, h.debug)
		return
	}

	transport.WriteJSON(w, http.StatusOK, admin)
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
