package servicerequests

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cw-prime/Payton-Place/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound           = errors.New("service request not found")
	ErrMissingFields      = errors.New("name, email, phone, serviceId and message are required")
	ErrInvalidService     = errors.New("selected service is invalid")
	ErrServiceNotFound    = errors.New("selected service could not be found")
	ErrInvalidStatus      = errors.New("invalid service request status")
	ErrInvalidContactPref = errors.New("invalid preferred contact method")
	ErrBotVerification    = errors.New("bot verification failed")
)

// BotVerifier is satisfied by verify.Turnstile.
type BotVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token string) (bool, error)
}

// ServiceDirectory resolves the requested service.
type ServiceDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]services.Summary, error)
}

type Manager struct {
	repo     Repository
	dir      ServiceDirectory
	verifier BotVerifier
	location *time.Location
}

func NewManager(repo Repository, dir ServiceDirectory, verifier BotVerifier, location *time.Location) *Manager {
	return &Manager{repo: repo, dir: dir, verifier: verifier, location: location}
}

func (m *Manager) Submit(ctx context.Context, req SubmitRequest) (ServiceRequest, error) {
	request := ServiceRequest{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		ServiceID: strings.TrimSpace(req.ServiceID),
		Message:   strings.TrimSpace(req.Message),
	}

	if request.Name == "" || request.Email == "" || request.Phone == "" ||
		request.ServiceID == "" || request.Message == "" {
		return ServiceRequest{}, ErrMissingFields
	}

	method := strings.TrimSpace(req.PreferredContactMethod)
	if method == "" {
		method = ContactEither
	}
	if !validContactMethod(method) {
		return ServiceRequest{}, ErrInvalidContactPref
	}
	request.PreferredContactMethod = method

	if m.verifier != nil && m.verifier.Enabled() {
		ok, err := m.verifier.Verify(ctx, req.TurnstileToken)
		if err != nil || !ok {
			return ServiceRequest{}, ErrBotVerification
		}
	}

	if _, err := primitive.ObjectIDFromHex(request.ServiceID); err != nil {
		return ServiceRequest{}, ErrInvalidService
	}
	exists, err := m.dir.Exists(ctx, request.ServiceID)
	if err != nil {
		return ServiceRequest{}, err
	}
	if !exists {
		return ServiceRequest{}, ErrServiceNotFound
	}

	now := time.Now().In(m.location)
	request.ID = primitive.NewObjectID().Hex()
	request.Status = StatusNew
	request.CreatedAt = now
	request.UpdatedAt = now

	if err := m.repo.Create(ctx, request); err != nil {
		return ServiceRequest{}, err
	}

	m.resolveOne(ctx, &request)
	return request, nil
}

func (m *Manager) List(ctx context.Context, status string) ([]ServiceRequest, error) {
	items, err := m.repo.List(ctx, strings.TrimSpace(status))
	if err != nil {
		return nil, err
	}
	if err := m.resolveServices(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (m *Manager) GetByID(ctx context.Context, id string) (ServiceRequest, error) {
	request, err := m.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ServiceRequest{}, ErrNotFound
		}
		return ServiceRequest{}, err
	}

	m.resolveOne(ctx, &request)
	return request, nil
}

func (m *Manager) UpdateStatus(ctx context.Context, id, status string) (ServiceRequest, error) {
	if !ValidStatus(status) {
		return ServiceRequest{}, ErrInvalidStatus
	}

	set := bson.M{"status": status, "updatedAt": time.Now().In(m.location)}
	updated, err := m.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ServiceRequest{}, ErrNotFound
		}
		return ServiceRequest{}, err
	}

	m.resolveOne(ctx, &updated)
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

func (m *Manager) resolveServices(ctx context.Context, items []ServiceRequest) error {
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for i := range items {
		id := items[i].ServiceID
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	summaries, err := m.dir.Summaries(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if summary, ok := summaries[items[i].ServiceID]; ok {
			s := summary
			items[i].Service = &s
		}
	}
	return nil
}

// resolveOne is best effort; a missing summary leaves Service nil.
func (m *Manager) resolveOne(ctx context.Context, request *ServiceRequest) {
	if request.ServiceID == "" {
		return
	}
	summaries, err := m.dir.Summaries(ctx, []string{request.ServiceID})
	if err != nil {
		return
	}
	if summary, ok := summaries[request.ServiceID]; ok {
		request.Service = &summary
	}
}
