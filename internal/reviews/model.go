package reviews

import (
	"time"

	"github.com/cw-prime/Payton-Place/internal/services"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

const (
	NameMin  = 2
	NameMax  = 100
	EmailMin = 5
	EmailMax = 160
	TitleMin = 3
	TitleMax = 120
	BodyMin  = 10
	BodyMax  = 1000
)

type Review struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	CustomerName  string    `bson:"customerName" json:"customerName"`
	CustomerEmail string    `bson:"customerEmail" json:"customerEmail"`
	Rating        int       `bson:"rating" json:"rating"`
	Title         string    `bson:"title" json:"title"`
	Body          string    `bson:"body" json:"body"`
	ServiceID     string    `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Status        string    `bson:"status" json:"status"`
	Featured      bool      `bson:"featured" json:"featured"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`

	// Service carries the resolved name of ServiceID in list and
	// moderation responses. Never persisted.
	Service *services.Summary `bson:"-" json:"service,omitempty"`
}

// SubmitRequest is the public review form payload.
type SubmitRequest struct {
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	Rating         int    `json:"rating"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	ServiceID      string `json:"serviceId,omitempty"`
	TurnstileToken string `json:"turnstileToken,omitempty"`
}

// UpdateRequest is the admin moderation edit; nil fields are untouched.
// An empty ServiceID clears the reference.
type UpdateRequest struct {
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Rating        *int    `json:"rating,omitempty"`
	Title         *string `json:"title,omitempty"`
	Body          *string `json:"body,omitempty"`
	ServiceID     *string `json:"serviceId,omitempty"`
	Featured      *bool   `json:"featured,omitempty"`
	Status        *string `json:"status,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type Filter struct {
	Status       string
	ServiceID    string
	MinRating    *float64
	Search       string
	FeaturedOnly bool
}

const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortHighest = "highest"
	SortLowest  = "lowest"
	// sortFeatured floats featured reviews to the top of public lists.
	sortFeatured = "featured"
)

type Page struct {
	Number int64
	Limit  int64
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
	Limit int64 `json:"limit"`
}

type RatingSummary struct {
	AverageRating *float64 `json:"averageRating"`
	TotalReviews  int64    `json:"totalReviews"`
}

type PublicList struct {
	Data       []Review      `json:"data"`
	Pagination Pagination    `json:"pagination"`
	Summary    RatingSummary `json:"summary"`
}

type AdminList struct {
	Data       []Review   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

type ServiceBreakdown struct {
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`
}

type Analytics struct {
	Counts StatusCounts `json:"counts"`
	Totals struct {
		All      int64 `json:"all"`
		Approved int64 `json:"approved"`
	} `json:"totals"`
	AverageRating    *float64           `json:"averageRating"`
	ServiceBreakdown []ServiceBreakdown `json:"serviceBreakdown"`
	LatestActivity   *time.Time         `json:"latestActivity"`
}
