package projects

import (
	"context"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	created *Project
	lastSet bson.M
	lastID  string
	stored  *Project
}

func (f *fakeRepo) Create(ctx context.Context, p Project) error {
	f.created = &p
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]Project, error) {
	return nil, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Project, error) {
	if f.stored == nil {
		return Project{}, mongo.ErrNoDocuments
	}
	return *f.stored, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Project, error) {
	f.lastID = id
	f.lastSet = set
	if f.stored == nil {
		return Project{}, mongo.ErrNoDocuments
	}
	return *f.stored, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.stored != nil, nil
}

func TestMergeImages(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		uploaded []string
		want     []string
	}{
		{
			name:     "keeps order existing first",
			existing: []string{"/uploads/a.jpg", "/uploads/b.jpg"},
			uploaded: []string{"/uploads/c.jpg"},
			want:     []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"},
		},
		{
			name:     "dropped existing stays dropped",
			existing: []string{"/uploads/b.jpg"},
			uploaded: nil,
			want:     []string{"/uploads/b.jpg"},
		},
		{
			name:     "collapses duplicates",
			existing: []string{"/uploads/a.jpg", "/uploads/a.jpg"},
			uploaded: []string{"/uploads/a.jpg", "/uploads/b.jpg"},
			want:     []string{"/uploads/a.jpg", "/uploads/b.jpg"},
		},
		{
			name:     "skips blank entries",
			existing: []string{"", "  ", "/uploads/a.jpg"},
			uploaded: nil,
			want:     []string{"/uploads/a.jpg"},
		},
		{
			name:     "empty input clears the list",
			existing: nil,
			uploaded: nil,
			want:     []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeImages(tc.existing, tc.uploaded)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("MergeImages(%v, %v) = %v, want %v", tc.existing, tc.uploaded, got, tc.want)
			}
		})
	}
}

func TestUpdateReplacesImagesOnlyWhenSubmitted(t *testing.T) {
	repo := &fakeRepo{stored: &Project{ID: "64b000000000000000000001", Title: "Kitchen"}}
	m := NewManager(repo, time.UTC)

	title := "Kitchen Remodel"
	if _, err := m.Update(context.Background(), "64b000000000000000000001", UpdateRequest{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := repo.lastSet["images"]; ok {
		t.Fatalf("images should not be touched when neither existingImages nor uploads were sent: %v", repo.lastSet)
	}
	if repo.lastSet["title"] != "Kitchen Remodel" {
		t.Fatalf("title not set: %v", repo.lastSet)
	}

	if _, err := m.Update(context.Background(), "64b000000000000000000001", UpdateRequest{
		HasExisting:    true,
		ExistingImages: []string{"/uploads/keep.jpg"},
		NewImages:      []string{"/uploads/new.jpg"},
	}); err != nil {
		t.Fatalf("update with images: %v", err)
	}
	want := []string{"/uploads/keep.jpg", "/uploads/new.jpg"}
	if !reflect.DeepEqual(repo.lastSet["images"], want) {
		t.Fatalf("images = %v, want %v", repo.lastSet["images"], want)
	}
}

func TestUpdateClearsImagesWithEmptyExisting(t *testing.T) {
	repo := &fakeRepo{stored: &Project{ID: "64b000000000000000000001"}}
	m := NewManager(repo, time.UTC)

	if _, err := m.Update(context.Background(), "64b000000000000000000001", UpdateRequest{HasExisting: true}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reflect.DeepEqual(repo.lastSet["images"], []string{}) {
		t.Fatalf("images = %v, want empty slice", repo.lastSet["images"])
	}
}

func TestCreateTrimsFields(t *testing.T) {
	repo := &fakeRepo{}
	m := NewManager(repo, time.UTC)

	project, err := m.Create(context.Background(), CreateRequest{
		Title:       "  Deck Build  ",
		Description: " Composite deck ",
		Category:    CategoryResidential,
		Type:        " Outdoor ",
		Tags:        []string{" deck ", "", "outdoor"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Title != "Deck Build" || project.Type != "Outdoor" {
		t.Fatalf("fields not trimmed: %+v", project)
	}
	if !reflect.DeepEqual(project.Tags, []string{"deck", "outdoor"}) {
		t.Fatalf("tags = %v", project.Tags)
	}
	if project.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestUpdateNotFound(t *testing.T) {
	m := NewManager(&fakeRepo{}, time.UTC)
	title := "x"
	if _, err := m.Update(context.Background(), "missing", UpdateRequest{Title: &title}); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := m.Delete(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("delete err = %v, want ErrNotFound", err)
	}
}
