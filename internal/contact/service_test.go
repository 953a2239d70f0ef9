package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	created []Inquiry
	lastSet bson.M
	stored  *Inquiry
}

func (f *fakeRepo) Create(ctx context.Context, inquiry Inquiry) error {
	f.created = append(f.created, inquiry)
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]Inquiry, error) {
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Inquiry, error) {
	f.lastSet = set
	if f.stored == nil {
		return Inquiry{}, mongo.ErrNoDocuments
	}
	return *f.stored, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.stored != nil, nil
}

type fakeVerifier struct {
	enabled bool
	ok      bool
}

func (f *fakeVerifier) Enabled() bool { return f.enabled }

func (f *fakeVerifier) Verify(ctx context.Context, token string) (bool, error) {
	return f.ok, nil
}

func TestSubmitRequiresCoreFields(t *testing.T) {
	m := NewManager(&fakeRepo{}, nil, time.UTC)

	cases := []SubmitRequest{
		{Email: "a@b.com", Message: "hello there"},
		{Name: "Sam", Message: "hello there"},
		{Name: "Sam", Email: "a@b.com"},
		{Name: "  ", Email: "a@b.com", Message: "hi"},
	}
	for _, req := range cases {
		if _, err := m.Submit(context.Background(), req); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("req %+v: err = %v, want ErrMissingFields", req, err)
		}
	}
}

func TestSubmitStoresNewInquiry(t *testing.T) {
	repo := &fakeRepo{}
	m := NewManager(repo, &fakeVerifier{enabled: false}, time.UTC)

	inquiry, err := m.Submit(context.Background(), SubmitRequest{
		Name:        " Sam Rivera ",
		Email:       "Sam@Example.com",
		Message:     "We want a quote for a kitchen refresh.",
		ProjectType: "residential",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if inquiry.Status != StatusNew {
		t.Fatalf("status = %q, want new", inquiry.Status)
	}
	if inquiry.Name != "Sam Rivera" || inquiry.Email != "sam@example.com" {
		t.Fatalf("fields not normalized: %+v", inquiry)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d inquiries", len(repo.created))
	}
}

func TestSubmitBotVerification(t *testing.T) {
	repo := &fakeRepo{}
	m := NewManager(repo, &fakeVerifier{enabled: true, ok: false}, time.UTC)

	_, err := m.Submit(context.Background(), SubmitRequest{Name: "Sam", Email: "a@b.com", Message: "hello there"})
	if !errors.Is(err, ErrBotVerification) {
		t.Fatalf("err = %v, want ErrBotVerification", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("nothing should be persisted when verification fails")
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{stored: &Inquiry{ID: "1", Status: StatusRead}}
	m := NewManager(repo, nil, time.UTC)

	if _, err := m.UpdateStatus(context.Background(), "1", "spam"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}

	if _, err := m.UpdateStatus(context.Background(), "1", StatusRead); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if repo.lastSet["status"] != StatusRead {
		t.Fatalf("set = %v", repo.lastSet)
	}

	m = NewManager(&fakeRepo{}, nil, time.UTC)
	if _, err := m.UpdateStatus(context.Background(), "missing", StatusArchived); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
