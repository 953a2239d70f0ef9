package quotes

import "time"

const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusQuoted   = "quoted"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusQuoted, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

const (
	ProjectResidential = "residential"
	ProjectCommercial  = "commercial"
	ProjectBoth        = "both"
)

func validProjectType(s string) bool {
	switch s {
	case ProjectResidential, ProjectCommercial, ProjectBoth:
		return true
	}
	return false
}

type QuoteRequest struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	ProjectType string    `bson:"projectType" json:"projectType"`
	Description string    `bson:"description" json:"description"`
	BudgetRange string    `bson:"budgetRange" json:"budgetRange"`
	Timeline    string    `bson:"timeline" json:"timeline"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type SubmitRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ProjectType    string `json:"projectType"`
	Description    string `json:"description"`
	BudgetRange    string `json:"budgetRange"`
	Timeline       string `json:"timeline"`
	TurnstileToken string `json:"turnstileToken,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}
