package contact

import "time"

const (
	StatusNew       = "new"
	StatusRead      = "read"
	StatusResponded = "responded"
	StatusArchived  = "archived"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusRead, StatusResponded, StatusArchived:
		return true
	}
	return false
}

type Inquiry struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Message     string    `bson:"message" json:"message"`
	ProjectType string    `bson:"projectType,omitempty" json:"projectType,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type SubmitRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	ProjectType    string `json:"projectType,omitempty"`
	TurnstileToken string `json:"turnstileToken,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}
