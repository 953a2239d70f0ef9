package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("service not found")

type Manager struct {
	repo     Repository
	location *time.Location
}

func NewManager(repo Repository, location *time.Location) *Manager {
	return &Manager{repo: repo, location: location}
}

func (m *Manager) Create(ctx context.Context, req CreateRequest) (Service, error) {
	now := time.Now().In(m.location)
	service := Service{
		ID:          primitive.NewObjectID().Hex(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Icon:        strings.TrimSpace(req.Icon),
		Image:       req.ImageURL,
		Features:    trimAll(req.Features),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(ctx, service); err != nil {
		return Service{}, err
	}
	return service, nil
}

func (m *Manager) List(ctx context.Context, filter ListFilter) ([]Service, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return m.repo.List(ctx, filter)
}

func (m *Manager) GetByID(ctx context.Context, id string) (Service, error) {
	service, err := m.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}
	return service, nil
}

func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (Service, error) {
	set := bson.M{"updatedAt": time.Now().In(m.location)}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Icon != nil {
		set["icon"] = strings.TrimSpace(*req.Icon)
	}
	if req.ImageURL != nil {
		set["image"] = *req.ImageURL
	}
	if req.HasFeatures {
		set["features"] = trimAll(req.Features)
	}

	updated, err := m.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
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

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
