package services

import "time"

type Service struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Icon        string    `bson:"icon" json:"icon"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Features    []string  `bson:"features,omitempty" json:"features,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Summary is the subset of service fields other resources embed when
// resolving a serviceId reference.
type Summary struct {
	ID       string `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Category string `bson:"category" json:"category"`
}

type CreateRequest struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Category    string `validate:"required"`
	Icon        string `validate:"required"`
	ImageURL    string
	Features    []string
}

// UpdateRequest carries only the fields present in the submitted form;
// nil pointers leave the stored value untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Category    *string
	Icon        *string
	ImageURL    *string
	Features    []string
	HasFeatures bool
}

type ListFilter struct {
	Category string
}
