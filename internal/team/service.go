package team

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("team member not found")

type Manager struct {
	repo     Repository
	location *time.Location
}

func NewManager(repo Repository, location *time.Location) *Manager {
	return &Manager{repo: repo, location: location}
}

func (m *Manager) Create(ctx context.Context, req CreateRequest) (Member, error) {
	now := time.Now().In(m.location)
	member := Member{
		ID:          primitive.NewObjectID().Hex(),
		Name:        strings.TrimSpace(req.Name),
		Role:        strings.TrimSpace(req.Role),
		Bio:         strings.TrimSpace(req.Bio),
		Image:       req.ImageURL,
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		SocialLinks: req.SocialLinks,
		Order:       req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(ctx, member); err != nil {
		return Member{}, err
	}
	return member, nil
}

func (m *Manager) List(ctx context.Context) ([]Member, error) {
	return m.repo.List(ctx)
}

func (m *Manager) GetByID(ctx context.Context, id string) (Member, error) {
	member, err := m.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Member{}, ErrNotFound
		}
		return Member{}, err
	}
	return member, nil
}

func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (Member, error) {
	set := bson.M{"updatedAt": time.Now().In(m.location)}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		set["role"] = strings.TrimSpace(*req.Role)
	}
	if req.Bio != nil {
		set["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.ImageURL != nil {
		set["image"] = *req.ImageURL
	}
	if req.Email != nil {
		set["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		set["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.SocialLinks != nil {
		set["socialLinks"] = *req.SocialLinks
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}

	updated, err := m.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Member{}, ErrNotFound
		}
		return Member{}, err
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
