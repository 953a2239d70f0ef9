package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("project not found")

type Manager struct {
	repo     Repository
	location *time.Location
}

func NewManager(repo Repository, location *time.Location) *Manager {
	return &Manager{repo: repo, location: location}
}

func (m *Manager) Create(ctx context.Context, req CreateRequest) (Project, error) {
	now := time.Now().In(m.location)
	project := Project{
		ID:          primitive.NewObjectID().Hex(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Type:        strings.TrimSpace(req.Type),
		Featured:    req.Featured,
		Images:      req.Images,
		Details:     req.Details,
		Testimonial: req.Testimonial,
		Tags:        trimAll(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if project.Images == nil {
		project.Images = []string{}
	}

	if err := m.repo.Create(ctx, project); err != nil {
		return Project{}, err
	}
	return project, nil
}

func (m *Manager) List(ctx context.Context, filter ListFilter) ([]Project, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return m.repo.List(ctx, filter)
}

func (m *Manager) GetByID(ctx context.Context, id string) (Project, error) {
	project, err := m.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return project, nil
}

func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (Project, error) {
	set := bson.M{"updatedAt": time.Now().In(m.location)}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Type != nil {
		set["type"] = strings.TrimSpace(*req.Type)
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.Details != nil {
		set["details"] = *req.Details
	}
	if req.Testimonial != nil {
		set["testimonial"] = *req.Testimonial
	}
	if req.HasTags {
		set["tags"] = trimAll(req.Tags)
	}
	if req.HasExisting || len(req.NewImages) > 0 {
		set["images"] = MergeImages(req.ExistingImages, req.NewImages)
	}

	updated, err := m.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
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

// MergeImages builds the replacement image list for an update: the URLs
// the client kept, in their submitted order, followed by new uploads.
// Duplicates are collapsed on first occurrence.
func MergeImages(existing, uploaded []string) []string {
	out := make([]string, 0, len(existing)+len(uploaded))
	seen := make(map[string]struct{}, len(existing)+len(uploaded))
	for _, url := range append(append([]string{}, existing...), uploaded...) {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
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
