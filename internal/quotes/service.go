package quotes

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
	ErrNotFound           = errors.New("quote request not found")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidProjectType = errors.New("invalid project type")
	ErrInvalidStatus      = errors.New("invalid quote status")
	ErrBotVerification    = errors.New("bot verification failed")
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

func (m *Manager) Submit(ctx context.Context, req SubmitRequest) (QuoteRequest, error) {
	quote := QuoteRequest{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		ProjectType: strings.TrimSpace(req.ProjectType),
		Description: strings.TrimSpace(req.Description),
		BudgetRange: strings.TrimSpace(req.BudgetRange),
		Timeline:    strings.TrimSpace(req.Timeline),
	}

	if quote.Name == "" || quote.Email == "" || quote.Phone == "" || quote.ProjectType == "" ||
		quote.Description == "" || quote.BudgetRange == "" || quote.Timeline == "" {
		return QuoteRequest{}, ErrMissingFields
	}
	if !validProjectType(quote.ProjectType) {
		return QuoteRequest{}, ErrInvalidProjectType
	}

	if m.verifier != nil && m.verifier.Enabled() {
		ok, err := m.verifier.Verify(ctx, req.TurnstileToken)
		if err != nil || !ok {
			return QuoteRequest{}, ErrBotVerification
		}
	}

	now := time.Now().In(m.location)
	quote.ID = primitive.NewObjectID().Hex()
	quote.Status = StatusPending
	quote.CreatedAt = now
	quote.UpdatedAt = now

	if err := m.repo.Create(ctx, quote); err != nil {
		return QuoteRequest{}, err
	}
	return quote, nil
}

func (m *Manager) List(ctx context.Context) ([]QuoteRequest, error) {
	return m.repo.List(ctx)
}

func (m *Manager) UpdateStatus(ctx context.Context, id, status string) (QuoteRequest, error) {
	if !ValidStatus(status) {
		return QuoteRequest{}, ErrInvalidStatus
	}

	set := bson.M{"status": status, "updatedAt": time.Now().In(m.location)}
	updated, err := m.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return QuoteRequest{}, ErrNotFound
		}
		return QuoteRequest{}, err
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
