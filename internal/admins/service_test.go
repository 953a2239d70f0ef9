package admins

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cw-prime/Payton-Place/internal/auth"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	byEmail map[string]Admin
	created []Admin
}

func (f *fakeRepo) Create(ctx context.Context, admin Admin) error {
	f.created = append(f.created, admin)
	if f.byEmail == nil {
		f.byEmail = map[string]Admin{}
	}
	f.byEmail[admin.Email] = admin
	return nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (Admin, error) {
	if admin, ok := f.byEmail[email]; ok {
		return admin, nil
	}
	return Admin{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (Admin, error) {
	for _, admin := range f.byEmail {
		if admin.ID == id {
			return admin, nil
		}
	}
	return Admin{}, mongo.ErrNoDocuments
}

func newTestManager(repo *fakeRepo) *Manager {
	tokens := &auth.Manager{Secret: []byte("test-secret"), TokenTTL: time.Hour, Issuer: "test"}
	return NewManager(repo, tokens, time.UTC)
}

func seedAdmin(t *testing.T, repo *fakeRepo, email, password, role string) Admin {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := Admin{ID: "64b000000000000000000a01", Email: email, Name: "Seed Admin", PasswordHash: hash, Role: role}
	if repo.byEmail == nil {
		repo.byEmail = map[string]Admin{}
	}
	repo.byEmail[email] = admin
	return admin
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	repo := &fakeRepo{}
	seedAdmin(t, repo, "admin@example.com", "hunter22", RoleSuperAdmin)
	m := newTestManager(repo)

	resp, err := m.Login(context.Background(), LoginRequest{Email: " Admin@Example.com ", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Admin.Role != RoleSuperAdmin || resp.Admin.Email != "admin@example.com" {
		t.Fatalf("admin profile = %+v", resp.Admin)
	}

	tokens := &auth.Manager{Secret: []byte("test-secret"), TokenTTL: time.Hour, Issuer: "test"}
	claims, err := tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.AdminID != resp.Admin.ID || claims.Role != RoleSuperAdmin {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := &fakeRepo{}
	seedAdmin(t, repo, "admin@example.com", "hunter22", RoleAdmin)
	m := newTestManager(repo)

	if _, err := m.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := m.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "hunter22"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := m.Login(context.Background(), LoginRequest{Email: "admin@example.com"}); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want ErrMissingCredentials", err)
	}
}

func TestRegisterCreatesRegularAdmin(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestManager(repo)

	resp, err := m.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Password: "s3cret-pass",
		Name:     "New Admin",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Admin.Role != RoleAdmin {
		t.Fatalf("role = %q, registration must never mint super-admins", resp.Admin.Role)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d admins", len(repo.created))
	}
	stored := repo.created[0]
	if stored.Email != "new@example.com" {
		t.Fatalf("email not lowercased: %q", stored.Email)
	}
	if stored.PasswordHash == "s3cret-pass" || stored.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	if _, err := m.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "other",
		Name:     "Dup",
	}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateSuperAdmin(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestManager(repo)

	admin, err := m.CreateSuperAdmin(context.Background(), "root@example.com", "bootstrap-pass", "Root")
	if err != nil {
		t.Fatalf("create super admin: %v", err)
	}
	if admin.Role != RoleSuperAdmin {
		t.Fatalf("role = %q", admin.Role)
	}

	if _, err := m.CreateSuperAdmin(context.Background(), "root@example.com", "x", "Root"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeRepo{}
	seeded := seedAdmin(t, repo, "admin@example.com", "hunter22", RoleAdmin)
	m := newTestManager(repo)

	admin, err := m.GetByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if admin.Email != seeded.Email {
		t.Fatalf("admin = %+v", admin)
	}

	if _, err := m.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
