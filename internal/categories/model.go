package categories

import "time"

const (
	TypeProject = "project"
	TypeService = "service"
)

type Category struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Type        string    `bson:"type" json:"type"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=project service"`
	Active      *bool  `json:"active"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Type        *string `json:"type" validate:"omitempty,oneof=project service"`
	Active      *bool   `json:"active"`
}

type ListFilter struct {
	Type   string
	Active *bool
}
