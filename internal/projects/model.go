package projects

import "time"

const (
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
)

type Details struct {
	Location       string     `bson:"location,omitempty" json:"location,omitempty"`
	CompletionDate *time.Time `bson:"completionDate,omitempty" json:"completionDate,omitempty"`
	Duration       string     `bson:"duration,omitempty" json:"duration,omitempty"`
	Budget         string     `bson:"budget,omitempty" json:"budget,omitempty"`
	Client         string     `bson:"client,omitempty" json:"client,omitempty"`
}

type Testimonial struct {
	Text   string `bson:"text,omitempty" json:"text,omitempty"`
	Author string `bson:"author,omitempty" json:"author,omitempty"`
	Role   string `bson:"role,omitempty" json:"role,omitempty"`
}

// Project images are ordered; the first entry is the featured thumbnail.
type Project struct {
	ID          string       `bson:"_id,omitempty" json:"id"`
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description" json:"description"`
	Category    string       `bson:"category" json:"category"`
	Type        string       `bson:"type" json:"type"`
	Images      []string     `bson:"images" json:"images"`
	Featured    bool         `bson:"featured" json:"featured"`
	Details     Details      `bson:"details,omitempty" json:"details"`
	Testimonial *Testimonial `bson:"testimonial,omitempty" json:"testimonial,omitempty"`
	Tags        []string     `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Category    string `validate:"required,oneof=residential commercial"`
	Type        string `validate:"required"`
	Featured    bool
	Images      []string
	Details     Details
	Testimonial *Testimonial
	Tags        []string
}

type UpdateRequest struct {
	Title       *string
	Description *string
	Category    *string `validate:"omitempty,oneof=residential commercial"`
	Type        *string
	Featured    *bool
	Details     *Details
	Testimonial *Testimonial
	Tags        []string
	HasTags     bool

	// When HasExisting is set or NewImages is non-empty, the stored
	// images array is replaced by ExistingImages followed by NewImages.
	// Existing URLs left out of ExistingImages are dropped.
	ExistingImages []string
	HasExisting    bool
	NewImages      []string
}

type ListFilter struct {
	Category     string
	FeaturedOnly bool
}
