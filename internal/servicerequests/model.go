package servicerequests

import (
	"time"

	"github.com/cw-prime/Payton-Place/internal/services"
)

const (
	StatusNew        = "new"
	StatusContacted  = "contacted"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusDeclined   = "declined"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusInProgress, StatusCompleted, StatusDeclined:
		return true
	}
	return false
}

const (
	ContactEmail  = "email"
	ContactPhone  = "phone"
	ContactEither = "either"
)

func validContactMethod(s string) bool {
	switch s {
	case ContactEmail, ContactPhone, ContactEither:
		return true
	}
	return false
}

type ServiceRequest struct {
	ID                     string    `bson:"_id,omitempty" json:"id"`
	Name                   string    `bson:"name" json:"name"`
	Email                  string    `bson:"email" json:"email"`
	Phone                  string    `bson:"phone" json:"phone"`
	ServiceID              string    `bson:"serviceId" json:"serviceId"`
	Message                string    `bson:"message" json:"message"`
	PreferredContactMethod string    `bson:"preferredContactMethod" json:"preferredContactMethod"`
	Status                 string    `bson:"status" json:"status"`
	CreatedAt              time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time `bson:"updatedAt" json:"updatedAt"`

	// Service carries the resolved service summary in responses and
	// the notification email. Never persisted.
	Service *services.Summary `bson:"-" json:"service,omitempty"`
}

type SubmitRequest struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	ServiceID              string `json:"serviceId"`
	Message                string `json:"message"`
	PreferredContactMethod string `json:"preferredContactMethod,omitempty"`
	TurnstileToken         string `json:"turnstileToken,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}
