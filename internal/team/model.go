package team

import "time"

type SocialLinks struct {
	LinkedIn string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter  string `bson:"twitter,omitempty" json:"twitter,omitempty"`
}

type Member struct {
	ID          string       `bson:"_id,omitempty" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Role        string       `bson:"role" json:"role"`
	Bio         string       `bson:"bio" json:"bio"`
	Image       string       `bson:"image" json:"image"`
	Email       string       `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string       `bson:"phone,omitempty" json:"phone,omitempty"`
	SocialLinks *SocialLinks `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Order       int          `bson:"order" json:"order"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Name        string `validate:"required"`
	Role        string `validate:"required"`
	Bio         string `validate:"required"`
	ImageURL    string `validate:"required"`
	Email       string `validate:"omitempty,email"`
	Phone       string `validate:"omitempty,phone"`
	SocialLinks *SocialLinks
	Order       int
}

type UpdateRequest struct {
	Name        *string
	Role        *string
	Bio         *string
	ImageURL    *string
	Email       *string `validate:"omitempty,email"`
	Phone       *string `validate:"omitempty,phone"`
	SocialLinks *SocialLinks
	Order       *int
}
