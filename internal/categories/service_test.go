package categories

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	created    []Category
	slugTaken  bool
	lastFilter ListFilter
	lastSet    bson.M
	stored     map[string]Category
}

func (f *fakeRepo) Create(ctx context.Context, category Category) error {
	if f.slugTaken {
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	f.created = append(f.created, category)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]Category, error) {
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Category, error) {
	if c, ok := f.stored[id]; ok {
		return c, nil
	}
	return Category{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Category, error) {
	f.lastSet = set
	if c, ok := f.stored[id]; ok {
		return c, nil
	}
	return Category{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := f.stored[id]
	return ok, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, time.UTC)
}

func TestCreateDefaultsSlugAndActive(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	category, err := svc.Create(context.Background(), CreateRequest{
		Name: "Kitchen Remodels",
		Type: TypeProject,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if category.Slug != "kitchen-remodels" {
		t.Fatalf("expected slug from name, got %q", category.Slug)
	}
	if !category.Active {
		t.Fatalf("expected active to default to true")
	}
	if category.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreateHonorsExplicitInactive(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	inactive := false
	category, err := svc.Create(context.Background(), CreateRequest{
		Name:   "Retired",
		Type:   TypeService,
		Active: &inactive,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if category.Active {
		t.Fatalf("expected active=false to be honored")
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	repo := &fakeRepo{slugTaken: true}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateRequest{Name: "Dup", Type: TypeProject})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{stored: map[string]Category{}})
	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateOnlySetsProvidedFields(t *testing.T) {
	repo := &fakeRepo{stored: map[string]Category{"id1": {ID: "id1"}}}
	svc := newTestService(repo)

	name := "New Name"
	if _, err := svc.Update(context.Background(), "id1", UpdateRequest{Name: &name}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if _, ok := repo.lastSet["name"]; !ok {
		t.Fatalf("expected name in update set")
	}
	if _, ok := repo.lastSet["slug"]; ok {
		t.Fatalf("slug should not be updated when absent")
	}
	if _, ok := repo.lastSet["active"]; ok {
		t.Fatalf("active should not be updated when absent")
	}
	if _, ok := repo.lastSet["updatedAt"]; !ok {
		t.Fatalf("expected updatedAt to always be set")
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{stored: map[string]Category{}})
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
