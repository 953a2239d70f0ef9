package reviews

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cw-prime/Payton-Place/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	created    []Review
	items      []Review
	total      int64
	average    *float64
	lastFilter Filter
	lastSort   string
	lastPage   Page
	lastSet    bson.M
	lastUnset  bson.M
	updated    *Review
	deleted    bool

	counts     StatusCounts
	approved   int64
	perService []ServiceMetric
	latest     *time.Time
}

func (f *fakeRepo) Create(ctx context.Context, review Review) error {
	f.created = append(f.created, review)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter, sort string, page Page) ([]Review, error) {
	f.lastFilter = filter
	f.lastSort = sort
	f.lastPage = page
	return f.items, nil
}

func (f *fakeRepo) Count(ctx context.Context, filter Filter) (int64, error) {
	return f.total, nil
}

func (f *fakeRepo) AverageRating(ctx context.Context, filter Filter) (*float64, error) {
	return f.average, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set, unset bson.M) (Review, error) {
	f.lastSet = set
	f.lastUnset = unset
	if f.updated == nil {
		return Review{}, mongo.ErrNoDocuments
	}
	return *f.updated, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleted, nil
}

func (f *fakeRepo) StatusCounts(ctx context.Context) (StatusCounts, error) {
	return f.counts, nil
}

func (f *fakeRepo) ApprovedMetrics(ctx context.Context) (*float64, int64, error) {
	return f.average, f.approved, nil
}

func (f *fakeRepo) PerServiceMetrics(ctx context.Context) ([]ServiceMetric, error) {
	return f.perService, nil
}

func (f *fakeRepo) LatestCreatedAt(ctx context.Context) (*time.Time, error) {
	return f.latest, nil
}

type fakeDirectory struct {
	existing  map[string]bool
	summaries map[string]services.Summary
}

func (f *fakeDirectory) Exists(ctx context.Context, id string) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeDirectory) Summaries(ctx context.Context, ids []string) (map[string]services.Summary, error) {
	out := make(map[string]services.Summary)
	for _, id := range ids {
		if s, ok := f.summaries[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type fakeVerifier struct {
	enabled   bool
	ok        bool
	lastToken string
}

func (f *fakeVerifier) Enabled() bool { return f.enabled }

func (f *fakeVerifier) Verify(ctx context.Context, token string) (bool, error) {
	f.lastToken = token
	return f.ok, nil
}

const svcID = "64b000000000000000000aaa"

func newTestManager(repo *fakeRepo, dir *fakeDirectory, verifier *fakeVerifier) *Manager {
	if dir == nil {
		dir = &fakeDirectory{existing: map[string]bool{}, summaries: map[string]services.Summary{}}
	}
	var v BotVerifier
	if verifier != nil {
		v = verifier
	}
	return NewManager(repo, dir, v, time.UTC)
}

func validSubmission() SubmitRequest {
	return SubmitRequest{
		CustomerName:  "Jordan Lee",
		CustomerEmail: "Jordan@Example.com",
		Rating:        5,
		Title:         "Great work",
		Body:          "The crew finished the kitchen ahead of schedule.",
	}
}

func TestSubmitStoresPendingReview(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestManager(repo, nil, nil)

	id, err := m.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id == "" {
		t.Fatal("expected a review id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d reviews", len(repo.created))
	}
	got := repo.created[0]
	if got.Status != StatusPending {
		t.Fatalf("status = %q, want pending", got.Status)
	}
	if got.Featured {
		t.Fatal("new reviews must not be featured")
	}
	if got.CustomerEmail != "jordan@example.com" {
		t.Fatalf("email not lowercased: %q", got.CustomerEmail)
	}
}

func TestSubmitRejectsOutOfBoundsFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*SubmitRequest)
		message string
	}{
		{"short name", func(r *SubmitRequest) { r.CustomerName = "J" }, "Invalid review submission. Please check your entries."},
		{"long title", func(r *SubmitRequest) { r.Title = strings.Repeat("x", 121) }, "Invalid review submission. Please check your entries."},
		{"short body", func(r *SubmitRequest) { r.Body = "too short" }, "Invalid review submission. Please check your entries."},
		{"rating low", func(r *SubmitRequest) { r.Rating = 0 }, "Rating must be between 1 and 5 stars."},
		{"rating high", func(r *SubmitRequest) { r.Rating = 6 }, "Rating must be between 1 and 5 stars."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSubmission()
			tc.mutate(&req)
			_, err := newTestManager(&fakeRepo{}, nil, nil).Submit(context.Background(), req)
			var inv *InvalidError
			if !errors.As(err, &inv) {
				t.Fatalf("err = %v, want InvalidError", err)
			}
			if inv.Message != tc.message {
				t.Fatalf("message = %q, want %q", inv.Message, tc.message)
			}
		})
	}
}

func TestSubmitBotVerification(t *testing.T) {
	verifier := &fakeVerifier{enabled: true, ok: false}
	_, err := newTestManager(&fakeRepo{}, nil, verifier).Submit(context.Background(), validSubmission())
	var inv *InvalidError
	if !errors.As(err, &inv) || inv.Message != "Bot verification failed. Please try again." {
		t.Fatalf("err = %v, want bot verification failure", err)
	}

	// Disabled verifier admits the submission without a token.
	repo := &fakeRepo{}
	if _, err := newTestManager(repo, nil, &fakeVerifier{enabled: false}).Submit(context.Background(), validSubmission()); err != nil {
		t.Fatalf("submit with disabled verifier: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatal("review not stored")
	}
}

func TestSubmitServiceResolution(t *testing.T) {
	dir := &fakeDirectory{existing: map[string]bool{svcID: true}}
	repo := &fakeRepo{}
	m := newTestManager(repo, dir, nil)

	req := validSubmission()
	req.ServiceID = "not-an-object-id"
	if _, err := m.Submit(context.Background(), req); err == nil || err.Error() != "Selected service is invalid." {
		t.Fatalf("err = %v", err)
	}

	req.ServiceID = "64b000000000000000000bbb"
	if _, err := m.Submit(context.Background(), req); err == nil || err.Error() != "Selected service could not be found." {
		t.Fatalf("err = %v", err)
	}

	req.ServiceID = svcID
	if _, err := m.Submit(context.Background(), req); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if repo.created[0].ServiceID != svcID {
		t.Fatalf("serviceId = %q", repo.created[0].ServiceID)
	}
}

func TestPublicListFiltersApprovedAndSortsFeaturedFirst(t *testing.T) {
	avg := 4.5
	repo := &fakeRepo{
		items: []Review{
			{ID: "1", ServiceID: svcID, Rating: 5},
			{ID: "2", Rating: 4},
		},
		total:   12,
		average: &avg,
	}
	dir := &fakeDirectory{summaries: map[string]services.Summary{
		svcID: {ID: svcID, Name: "Kitchen Remodeling"},
	}}
	m := newTestManager(repo, dir, nil)

	result, err := m.PublicList(context.Background(), PublicQuery{Page: Page{Number: 2, Limit: 5}})
	if err != nil {
		t.Fatalf("public list: %v", err)
	}
	if repo.lastFilter.Status != StatusApproved {
		t.Fatalf("filter status = %q, want approved", repo.lastFilter.Status)
	}
	if repo.lastSort != sortFeatured {
		t.Fatalf("sort = %q, want featured-first", repo.lastSort)
	}
	if result.Pagination.Pages != 3 {
		t.Fatalf("pages = %d, want ceil(12/5) = 3", result.Pagination.Pages)
	}
	if result.Summary.AverageRating == nil || *result.Summary.AverageRating != 4.5 {
		t.Fatalf("averageRating = %v", result.Summary.AverageRating)
	}
	if result.Data[0].Service == nil || result.Data[0].Service.Name != "Kitchen Remodeling" {
		t.Fatalf("service not resolved: %+v", result.Data[0].Service)
	}
	if result.Data[1].Service != nil {
		t.Fatal("review without serviceId should have no resolved service")
	}
}

func TestPublicListIgnoresMalformedServiceID(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestManager(repo, nil, nil)

	if _, err := m.PublicList(context.Background(), PublicQuery{ServiceID: "garbage", Page: Page{Number: 1, Limit: 10}}); err != nil {
		t.Fatalf("public list: %v", err)
	}
	if repo.lastFilter.ServiceID != "" {
		t.Fatalf("malformed serviceId leaked into the filter: %q", repo.lastFilter.ServiceID)
	}
}

func TestAdminListSortAndStatusFallbacks(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestManager(repo, nil, nil)

	if _, err := m.AdminListReviews(context.Background(), AdminQuery{
		Status: "bogus",
		Sort:   "sideways",
		Page:   Page{Number: 1, Limit: 20},
	}); err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if repo.lastFilter.Status != "" {
		t.Fatalf("unknown status should be ignored, got %q", repo.lastFilter.Status)
	}
	if repo.lastSort != SortNewest {
		t.Fatalf("sort = %q, want newest fallback", repo.lastSort)
	}

	if _, err := m.AdminListReviews(context.Background(), AdminQuery{
		Status: StatusRejected,
		Sort:   SortLowest,
		Page:   Page{Number: 1, Limit: 20},
	}); err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if repo.lastFilter.Status != StatusRejected || repo.lastSort != SortLowest {
		t.Fatalf("filter = %+v sort = %q", repo.lastFilter, repo.lastSort)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	m := newTestManager(&fakeRepo{}, nil, nil)

	if _, err := m.UpdateStatus(context.Background(), "bad-id", StatusApproved); err == nil || err.Error() != "Invalid review id" {
		t.Fatalf("err = %v", err)
	}
	if _, err := m.UpdateStatus(context.Background(), svcID, "maybe"); err == nil || err.Error() != "Invalid review status" {
		t.Fatalf("err = %v", err)
	}
	if _, err := m.UpdateStatus(context.Background(), svcID, StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateClearsServiceReference(t *testing.T) {
	repo := &fakeRepo{updated: &Review{ID: svcID}}
	m := newTestManager(repo, nil, nil)

	empty := ""
	if _, err := m.Update(context.Background(), svcID, UpdateRequest{ServiceID: &empty}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := repo.lastUnset["serviceId"]; !ok {
		t.Fatalf("serviceId not unset: %v", repo.lastUnset)
	}
	if _, ok := repo.lastSet["serviceId"]; ok {
		t.Fatal("serviceId must not be in $set when clearing")
	}
}

func TestUpdateFieldValidationMessages(t *testing.T) {
	repo := &fakeRepo{updated: &Review{}}
	m := newTestManager(repo, nil, nil)

	bad := "x"
	if _, err := m.Update(context.Background(), svcID, UpdateRequest{CustomerName: &bad}); err == nil || err.Error() != "Customer name is invalid." {
		t.Fatalf("err = %v", err)
	}
	rating := 9
	if _, err := m.Update(context.Background(), svcID, UpdateRequest{Rating: &rating}); err == nil || err.Error() != "Rating must be between 1 and 5." {
		t.Fatalf("err = %v", err)
	}
	status := "published"
	if _, err := m.Update(context.Background(), svcID, UpdateRequest{Status: &status}); err == nil || err.Error() != "Invalid status value." {
		t.Fatalf("err = %v", err)
	}
}

func TestAnalyticsTotalsAndServiceNames(t *testing.T) {
	avg := 4.2
	latest := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		counts:   StatusCounts{Pending: 3, Approved: 7, Rejected: 2},
		average:  &avg,
		approved: 7,
		perService: []ServiceMetric{
			{ServiceID: svcID, AverageRating: 4.8, TotalReviews: 4},
			{ServiceID: "64b000000000000000000ccc", AverageRating: 3.5, TotalReviews: 3},
		},
		latest: &latest,
	}
	dir := &fakeDirectory{summaries: map[string]services.Summary{
		svcID: {ID: svcID, Name: "Kitchen Remodeling"},
	}}
	m := newTestManager(repo, dir, nil)

	analytics, err := m.Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.Totals.All != 12 {
		t.Fatalf("totals.all = %d, want 12", analytics.Totals.All)
	}
	if analytics.Totals.Approved != 7 {
		t.Fatalf("totals.approved = %d", analytics.Totals.Approved)
	}
	if analytics.ServiceBreakdown[0].ServiceName != "Kitchen Remodeling" {
		t.Fatalf("breakdown[0] = %+v", analytics.ServiceBreakdown[0])
	}
	if analytics.ServiceBreakdown[1].ServiceName != "Unknown Service" {
		t.Fatalf("breakdown[1] = %+v", analytics.ServiceBreakdown[1])
	}
	if analytics.LatestActivity == nil || !analytics.LatestActivity.Equal(latest) {
		t.Fatalf("latestActivity = %v", analytics.LatestActivity)
	}
}
