package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cw-prime/Payton-Place/internal/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("email, password and name are required")
	ErrAlreadyExists      = errors.New("admin already exists")
	ErrNotFound           = errors.New("admin not found")
)

type Manager struct {
	repo     Repository
	tokens   *auth.Manager
	location *time.Location
}

func NewManager(repo Repository, tokens *auth.Manager, location *time.Location) *Manager {
	return &Manager{repo: repo, tokens: tokens, location: location}
}

func (m *Manager) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return AuthResponse{}, ErrMissingCredentials
	}

	admin, err := m.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return AuthResponse{}, ErrInvalidCredentials
		}
		return AuthResponse{}, err
	}

	if err := auth.ComparePassword(admin.PasswordHash, req.Password); err != nil {
		return AuthResponse{}, ErrInvalidCredentials
	}

	token, err := m.tokens.NewToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{Token: token, Admin: admin.Profile()}, nil
}

// Register creates a regular admin account. The route is restricted to
// super-admins; the first account comes from cmd/createadmin.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	admin, err := m.create(ctx, req.Email, req.Password, req.Name, RoleAdmin)
	if err != nil {
		return AuthResponse{}, err
	}

	token, err := m.tokens.NewToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{Token: token, Admin: admin.Profile()}, nil
}

// CreateSuperAdmin bootstraps the first account. Used by the
// createadmin command, never exposed over HTTP.
func (m *Manager) CreateSuperAdmin(ctx context.Context, email, password, name string) (Admin, error) {
	return m.create(ctx, email, password, name, RoleSuperAdmin)
}

func (m *Manager) create(ctx context.Context, email, password, name, role string) (Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return Admin{}, ErrMissingFields
	}

	if _, err := m.repo.FindByEmail(ctx, email); err == nil {
		return Admin{}, ErrAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return Admin{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Admin{}, err
	}

	now := time.Now().In(m.location)
	admin := Admin{
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := m.repo.Create(ctx, admin); err != nil {
		// The unique index wins the race the FindByEmail check loses.
		if mongo.IsDuplicateKeyError(err) {
			return Admin{}, ErrAlreadyExists
		}
		return Admin{}, err
	}
	return admin, nil
}

func (m *Manager) GetByID(ctx context.Context, id string) (Admin, error) {
	admin, err := m.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}
	return admin, nil
}
