package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/cw-prime/Payton-Place/internal/admins"
	"github.com/cw-prime/Payton-Place/internal/auth"
	"github.com/cw-prime/Payton-Place/internal/config"
	"github.com/cw-prime/Payton-Place/internal/db"
)

// Bootstraps the first super-admin account from ADMIN_EMAIL,
// ADMIN_PASSWORD and ADMIN_NAME. Registration over HTTP requires an
// existing super-admin, so a fresh deployment runs this once.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	jwtManager := &auth.Manager{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: time.Duration(cfg.TokenTTLHours) * time.Hour,
		Issuer:   "payton-place",
	}
	manager := admins.NewManager(admins.NewRepository(cols.Admins), jwtManager, cfg.Timezone)

	admin, err := manager.CreateSuperAdmin(ctx, email, password, name)
	if errors.Is(err, admins.ErrAlreadyExists) {
		log.Printf("admin %s already exists, nothing to do", email)
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("super admin created: %s (%s)", admin.Email, admin.ID)
}
