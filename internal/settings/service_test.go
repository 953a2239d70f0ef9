package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeRepo struct {
	stored  *Settings
	lastSet bson.M
}

func (f *fakeRepo) GetOrCreate(ctx context.Context, defaults Settings) (Settings, error) {
	if f.stored == nil {
		defaults.ID = "site-settings"
		f.stored = &defaults
	}
	return *f.stored, nil
}

func (f *fakeRepo) Update(ctx context.Context, set bson.M, defaults Settings) (Settings, error) {
	f.lastSet = set
	if f.stored == nil {
		defaults.ID = "site-settings"
		f.stored = &defaults
	}
	return *f.stored, nil
}

func TestGetCreatesDefaultsOnce(t *testing.T) {
	repo := &fakeRepo{}
	m := NewManager(repo, time.UTC)

	first, err := m.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.HeroMediaType != MediaImage {
		t.Fatalf("default media type = %q, want image", first.HeroMediaType)
	}
	if first.HeroHeadline == "" || first.HeroImageURL == "" {
		t.Fatalf("defaults incomplete: %+v", first)
	}

	second, err := m.Get(context.Background())
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("get must keep returning the singleton document")
	}
}

func TestUpdateUploadedImageWinsOverURL(t *testing.T) {
	repo := &fakeRepo{}
	m := NewManager(repo, time.UTC)

	url := "https://example.com/other.jpg"
	if _, err := m.Update(context.Background(), UpdateRequest{
		HeroImageURL:     &url,
		UploadedImageURL: "/uploads/hero.jpg",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.lastSet["heroImageUrl"] != "/uploads/hero.jpg" {
		t.Fatalf("heroImageUrl = %v, upload should win", repo.lastSet["heroImageUrl"])
	}
	if repo.lastSet["heroMediaType"] != MediaImage {
		t.Fatalf("heroMediaType = %v, want image", repo.lastSet["heroMediaType"])
	}
}

func TestUpdateVideoUploadFlipsMediaType(t *testing.T) {
	repo := &fakeRepo{}
	m := NewManager(repo, time.UTC)

	mediaType := MediaImage
	if _, err := m.Update(context.Background(), UpdateRequest{
		HeroMediaType:    &mediaType,
		UploadedVideoURL: "/uploads/hero.mp4",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.lastSet["heroMediaType"] != MediaVideo {
		t.Fatalf("heroMediaType = %v, upload kind must win", repo.lastSet["heroMediaType"])
	}
	if repo.lastSet["heroVideoUrl"] != "/uploads/hero.mp4" {
		t.Fatalf("heroVideoUrl = %v", repo.lastSet["heroVideoUrl"])
	}
}

func TestUpdateRejectsUnknownMediaType(t *testing.T) {
	m := NewManager(&fakeRepo{}, time.UTC)

	mediaType := "gif"
	if _, err := m.Update(context.Background(), UpdateRequest{HeroMediaType: &mediaType}); !errors.Is(err, ErrInvalidMediaType) {
		t.Fatalf("err = %v, want ErrInvalidMediaType", err)
	}
}

func TestUpdateAllowsClearingVideoURL(t *testing.T) {
	repo := &fakeRepo{}
	m := NewManager(repo, time.UTC)

	empty := ""
	if _, err := m.Update(context.Background(), UpdateRequest{HeroVideoURL: &empty}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if v, ok := repo.lastSet["heroVideoUrl"]; !ok || v != "" {
		t.Fatalf("heroVideoUrl = %v, want explicit empty string", repo.lastSet["heroVideoUrl"])
	}
}
