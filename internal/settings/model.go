package settings

import "time"

const (
	MediaImage = "image"
	MediaVideo = "video"
)

const (
	defaultHeroImageURL   = "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=1600"
	defaultHeroHeadline   = "Transforming Spaces, Building Dreams"
	defaultHeroSubheading = "Premier real estate development company specializing in exceptional residential and commercial renovations"
)

type Settings struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	HeroMediaType   string    `bson:"heroMediaType" json:"heroMediaType"`
	HeroImageURL    string    `bson:"heroImageUrl" json:"heroImageUrl"`
	HeroVideoURL    string    `bson:"heroVideoUrl" json:"heroVideoUrl"`
	HeroHeadline    string    `bson:"heroHeadline" json:"heroHeadline"`
	HeroSubheadline string    `bson:"heroSubheadline" json:"heroSubheadline"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UpdateRequest carries the partial settings edit. Uploaded media is
// authoritative over the matching URL field and flips HeroMediaType to
// its own kind.
type UpdateRequest struct {
	HeroMediaType   *string
	HeroImageURL    *string
	HeroVideoURL    *string
	HeroHeadline    *string
	HeroSubheadline *string

	UploadedImageURL string
	UploadedVideoURL string
}
