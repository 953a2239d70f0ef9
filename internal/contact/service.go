package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound        = errors.New("contact inquiry not found")
	ErrMissingFields   = errors.New("name, email and message are required")
	ErrInvalidStatus   = errors.New("invalid inquiry status")
	ErrBotVerification = errors.New("bot verification failed")
)

// BotVerifier is satisfied by verify.Turnstile.
type BotVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token string) (bool, error)
}

type Manager struct {
	repo     Repository
	verifier BotVerifier
	location *time.Location
}

func NewManager(repo Repository, verifier BotVerifier, location *time.Location) *Manager {
	return &Manager{repo: repo, verifier: verifier, location: location}
}

func (m *Manager) Submit(ctx context.Context, req SubmitRequest) (Inquiry, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || message == "" {
		return Inquiry{}, ErrMissingFields
	}

	if m.verifier != nil && m.verifier.Enabled() {
		ok, err := m.verifier.Verify(ctx, req.TurnstileToken)
		if err != nil || !ok {
			return Inquiry{}, ErrBotVerification
		}
	}

	now := time.Now().In(m.location)
	inquiry := Inquiry{
		ID:          primitive.NewObjectID().Hex(),
		Name:        name,
		Email:       email,
		Message:     message,
		ProjectType: strings.TrimSpace(req.ProjectType),
		Status:      StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(ctx, inquiry); err != nil {
		return Inquiry{}, err
	}
	return inquiry, nil
}

func (m *Manager) List(ctx context.Context) ([]Inquiry, error) {
	return m.repo.List(ctx)
}

func (m *Manager) UpdateStatus(ctx context.Context, id, status string) (Inquiry, error) {
	if !ValidStatus(status) {
		return Inquiry{}, ErrInvalidStatus
	}

	set := bson.M{"status": status, "updatedAt": time.Now().In(m.location)}
	updated, err := m.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Inquiry{}, ErrNotFound
		}
		return Inquiry{}, err
	}
	return updated, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	deleted, err := m.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
