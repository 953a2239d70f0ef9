package categories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cw-prime/Payton-Place/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrDuplicateSlug = errors.New("category slug already exists")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{repo: repo, location: location}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Category, error) {
	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	} else {
		slug = utils.Slugify(slug)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().In(s.location)
	category := Category{
		ID:          primitive.NewObjectID().Hex(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(req.Description),
		Type:        req.Type,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Category{}, ErrDuplicateSlug
		}
		return Category{}, err
	}
	return category, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Category, error) {
	filter.Type = strings.TrimSpace(filter.Type)
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id string) (Category, error) {
	category, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return category, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Category, error) {
	set := bson.M{"updatedAt": time.Now().In(s.location)}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		set["slug"] = utils.Slugify(*req.Slug)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Category{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Category{}, ErrDuplicateSlug
		}
		return Category{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
