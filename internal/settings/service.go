package settings

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrInvalidMediaType = errors.New("hero media type must be image or video")

type Manager struct {
	repo     Repository
	location *time.Location
}

func NewManager(repo Repository, location *time.Location) *Manager {
	return &Manager{repo: repo, location: location}
}

func (m *Manager) defaults() Settings {
	now := time.Now().In(m.location)
	return Settings{
		HeroMediaType:   MediaImage,
		HeroImageURL:    defaultHeroImageURL,
		HeroVideoURL:    "",
		HeroHeadline:    defaultHeroHeadline,
		HeroSubheadline: defaultHeroSubheading,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Get returns the settings document, creating the default one on first
// access.
func (m *Manager) Get(ctx context.Context) (Settings, error) {
	return m.repo.GetOrCreate(ctx, m.defaults())
}

func (m *Manager) Update(ctx context.Context, req UpdateRequest) (Settings, error) {
	set := bson.M{"updatedAt": time.Now().In(m.location)}

	if req.HeroMediaType != nil {
		switch *req.HeroMediaType {
		case MediaImage, MediaVideo:
			set["heroMediaType"] = *req.HeroMediaType
		default:
			return Settings{}, ErrInvalidMediaType
		}
	}
	if req.HeroHeadline != nil {
		set["heroHeadline"] = *req.HeroHeadline
	}
	if req.HeroSubheadline != nil {
		set["heroSubheadline"] = *req.HeroSubheadline
	}

	// Uploads take precedence over URL fields and decide the media
	// type, video last to match upload-field priority.
	if req.UploadedImageURL != "" {
		set["heroImageUrl"] = req.UploadedImageURL
		set["heroMediaType"] = MediaImage
	} else if req.HeroImageURL != nil {
		set["heroImageUrl"] = *req.HeroImageURL
	}
	if req.UploadedVideoURL != "" {
		set["heroVideoUrl"] = req.UploadedVideoURL
		set["heroMediaType"] = MediaVideo
	} else if req.HeroVideoURL != nil {
		set["heroVideoUrl"] = *req.HeroVideoURL
	}

	return m.repo.Update(ctx, set, m.defaults())
}
