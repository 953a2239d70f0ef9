package reviews

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cw-prime/Payton-Place/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("review not found")

// InvalidError carries the user-facing message for a rejected
// submission or edit.
type InvalidError struct {
	Message string
}

func (e *InvalidError) Error() string { return e.Message }

func invalid(message string) error { return &InvalidError{Message: message} }

// BotVerifier is satisfied by verify.Turnstile.
type BotVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token string) (bool, error)
}

// ServiceDirectory resolves service references on reviews.
type ServiceDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
	Summaries(ctx context.Context, ids []string) (map[string]services.Summary, error)
}

type Manager struct {
	repo     Repository
	dir      ServiceDirectory
	verifier BotVerifier
	location *time.Location
}

func NewManager(repo Repository, dir ServiceDirectory, verifier BotVerifier, location *time.Location) *Manager {
	return &Manager{repo: repo, dir: dir, verifier: verifier, location: location}
}

// bounded returns the trimmed value, or "" when its length falls
// outside [min, max].
func bounded(value string, min, max int) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < min || len(trimmed) > max {
		return ""
	}
	return trimmed
}

func validObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// Submit validates a public review and stores it awaiting moderation.
func (m *Manager) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	name := bounded(req.CustomerName, NameMin, NameMax)
	email := strings.ToLower(bounded(req.CustomerEmail, EmailMin, EmailMax))
	title := bounded(req.Title, TitleMin, TitleMax)
	body := bounded(req.Body, BodyMin, BodyMax)

	if name == "" || email == "" || title == "" || body == "" {
		return "", invalid("Invalid review submission. Please check your entries.")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return "", invalid("Rating must be between 1 and 5 stars.")
	}

	if m.verifier != nil && m.verifier.Enabled() {
		ok, err := m.verifier.Verify(ctx, req.TurnstileToken)
		if err != nil || !ok {
			return "", invalid("Bot verification failed. Please try again.")
		}
	}

	serviceID := strings.TrimSpace(req.ServiceID)
	if serviceID != "" {
		if !validObjectID(serviceID) {
			return "", invalid("Selected service is invalid.")
		}
		exists, err := m.dir.Exists(ctx, serviceID)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", invalid("Selected service could not be found.")
		}
	}

	now := time.Now().In(m.location)
	review := Review{
		ID:            primitive.NewObjectID().Hex(),
		CustomerName:  name,
		CustomerEmail: email,
		Rating:        req.Rating,
		Title:         title,
		Body:          body,
		ServiceID:     serviceID,
		Status:        StatusPending,
		Featured:      false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := m.repo.Create(ctx, review); err != nil {
		return "", err
	}
	return review.ID, nil
}

type PublicQuery struct {
	ServiceID    string
	FeaturedOnly bool
	Page         Page
}

func (m *Manager) PublicList(ctx context.Context, q PublicQuery) (PublicList, error) {
	filter := Filter{Status: StatusApproved, FeaturedOnly: q.FeaturedOnly}
	if validObjectID(q.ServiceID) {
		filter.ServiceID = q.ServiceID
	}

	items, err := m.repo.List(ctx, filter, sortFeatured, q.Page)
	if err != nil {
		return PublicList{}, err
	}
	total, err := m.repo.Count(ctx, filter)
	if err != nil {
		return PublicList{}, err
	}
	average, err := m.repo.AverageRating(ctx, filter)
	if err != nil {
		return PublicList{}, err
	}

	if err := m.resolveServices(ctx, items); err != nil {
		return PublicList{}, err
	}

	return PublicList{
		Data:       items,
		Pagination: paginate(total, q.Page),
		Summary:    RatingSummary{AverageRating: average, TotalReviews: total},
	}, nil
}

type AdminQuery struct {
	Status    string
	ServiceID string
	MinRating *float64
	Search    string
	Sort      string
	Page      Page
}

func (m *Manager) AdminListReviews(ctx context.Context, q AdminQuery) (AdminList, error) {
	filter := Filter{
		MinRating: q.MinRating,
		Search:    strings.TrimSpace(q.Search),
	}
	if ValidStatus(q.Status) {
		filter.Status = q.Status
	}
	if validObjectID(q.ServiceID) {
		filter.ServiceID = q.ServiceID
	}

	sort := q.Sort
	switch sort {
	case SortNewest, SortOldest, SortHighest, SortLowest:
	default:
		sort = SortNewest
	}

	items, err := m.repo.List(ctx, filter, sort, q.Page)
	if err != nil {
		return AdminList{}, err
	}
	total, err := m.repo.Count(ctx, filter)
	if err != nil {
		return AdminList{}, err
	}

	if err := m.resolveServices(ctx, items); err != nil {
		return AdminList{}, err
	}

	return AdminList{Data: items, Pagination: paginate(total, q.Page)}, nil
}

func (m *Manager) UpdateStatus(ctx context.Context, id, status string) (Review, error) {
	if !validObjectID(id) {
		return Review{}, invalid("Invalid review id")
	}
	if !ValidStatus(status) {
		return Review{}, invalid("Invalid review status")
	}

	set := bson.M{"status": status, "updatedAt": time.Now().In(m.location)}
	updated, err := m.repo.Update(ctx, id, set, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}

	m.resolveOne(ctx, &updated)
	return updated, nil
}

func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (Review, error) {
	if !validObjectID(id) {
		return Review{}, invalid("Invalid review id")
	}

	set := bson.M{"updatedAt": time.Now().In(m.location)}
	unset := bson.M{}

	if req.CustomerName != nil {
		value := bounded(*req.CustomerName, NameMin, NameMax)
		if value == "" {
			return Review{}, invalid("Customer name is invalid.")
		}
		set["customerName"] = value
	}
	if req.CustomerEmail != nil {
		value := strings.ToLower(bounded(*req.CustomerEmail, EmailMin, EmailMax))
		if value == "" {
			return Review{}, invalid("Customer email is invalid.")
		}
		set["customerEmail"] = value
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return Review{}, invalid("Rating must be between 1 and 5.")
		}
		set["rating"] = *req.Rating
	}
	if req.Title != nil {
		value := bounded(*req.Title, TitleMin, TitleMax)
		if value == "" {
			return Review{}, invalid("Title is invalid.")
		}
		set["title"] = value
	}
	if req.Body != nil {
		value := bounded(*req.Body, BodyMin, BodyMax)
		if value == "" {
			return Review{}, invalid("Review body is invalid.")
		}
		set["body"] = value
	}
	if req.ServiceID != nil {
		serviceID := strings.TrimSpace(*req.ServiceID)
		switch {
		case serviceID == "":
			unset["serviceId"] = ""
		case validObjectID(serviceID):
			exists, err := m.dir.Exists(ctx, serviceID)
			if err != nil {
				return Review{}, err
			}
			if !exists {
				return Review{}, invalid("Selected service not found.")
			}
			set["serviceId"] = serviceID
		default:
			return Review{}, invalid("Service id is invalid.")
		}
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return Review{}, invalid("Invalid status value.")
		}
		set["status"] = *req.Status
	}

	updated, err := m.repo.Update(ctx, id, set, unset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}

	m.resolveOne(ctx, &updated)
	return updated, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	if !validObjectID(id) {
		return invalid("Invalid review id")
	}
	deleted, err := m.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) Analytics(ctx context.Context) (Analytics, error) {
	counts, err := m.repo.StatusCounts(ctx)
	if err != nil {
		return Analytics{}, err
	}
	average, totalApproved, err := m.repo.ApprovedMetrics(ctx)
	if err != nil {
		return Analytics{}, err
	}
	perService, err := m.repo.PerServiceMetrics(ctx)
	if err != nil {
		return Analytics{}, err
	}
	latest, err := m.repo.LatestCreatedAt(ctx)
	if err != nil {
		return Analytics{}, err
	}

	ids := make([]string, 0, len(perService))
	for _, metric := range perService {
		ids = append(ids, metric.ServiceID)
	}
	summaries, err := m.dir.Summaries(ctx, ids)
	if err != nil {
		return Analytics{}, err
	}

	breakdown := make([]ServiceBreakdown, 0, len(perService))
	for _, metric := range perService {
		name := "Unknown Service"
		if summary, ok := summaries[metric.ServiceID]; ok {
			name = summary.Name
		}
		breakdown = append(breakdown, ServiceBreakdown{
			ServiceID:     metric.ServiceID,
			ServiceName:   name,
			AverageRating: metric.AverageRating,
			TotalReviews:  metric.TotalReviews,
		})
	}

	analytics := Analytics{
		Counts:           counts,
		AverageRating:    average,
		ServiceBreakdown: breakdown,
		LatestActivity:   latest,
	}
	analytics.Totals.All = counts.Pending + counts.Approved + counts.Rejected
	analytics.Totals.Approved = totalApproved
	return analytics, nil
}

func paginate(total int64, page Page) Pagination {
	pages := total / page.Limit
	if total%page.Limit > 0 {
		pages++
	}
	return Pagination{Total: total, Page: page.Number, Pages: pages, Limit: page.Limit}
}

func (m *Manager) resolveServices(ctx context.Context, items []Review) error {
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for i := range items {
		id := items[i].ServiceID
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	summaries, err := m.dir.Summaries(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if summary, ok := summaries[items[i].ServiceID]; ok {
			s := summary
			items[i].Service = &s
		}
	}
	return nil
}

// resolveOne attaches the service name on single-document responses.
// Resolution failures are not fatal there.
func (m *Manager) resolveOne(ctx context.Context, review *Review) {
	if review.ServiceID == "" {
		return
	}
	summaries, err := m.dir.Summaries(ctx, []string{review.ServiceID})
	if err != nil {
		return
	}
	if summary, ok := summaries[review.ServiceID]; ok {
		review.Service = &summary
	}
}
