package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cw-prime/Payton-Place/internal/admins"
	"github.com/cw-prime/Payton-Place/internal/auth"
	"github.com/cw-prime/Payton-Place/internal/cache"
	"github.com/cw-prime/Payton-Place/internal/categories"
	"github.com/cw-prime/Payton-Place/internal/config"
	"github.com/cw-prime/Payton-Place/internal/contact"
	"github.com/cw-prime/Payton-Place/internal/db"
	"github.com/cw-prime/Payton-Place/internal/middleware"
	"github.com/cw-prime/Payton-Place/internal/notifications"
	"github.com/cw-prime/Payton-Place/internal/projects"
	"github.com/cw-prime/Payton-Place/internal/quotes"
	"github.com/cw-prime/Payton-Place/internal/reviews"
	"github.com/cw-prime/Payton-Place/internal/servicerequests"
	"github.com/cw-prime/Payton-Place/internal/services"
	"github.com/cw-prime/Payton-Place/internal/settings"
	"github.com/cw-prime/Payton-Place/internal/team"
	"github.com/cw-prime/Payton-Place/internal/transport"
	"github.com/cw-prime/Payton-Place/internal/upload"
	"github.com/cw-prime/Payton-Place/internal/validation"
	"github.com/cw-prime/Payton-Place/internal/verify"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	debug := !cfg.IsProduction()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected", slog.String("db", cfg.MongoDB))
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Error("upload dir unavailable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jwtManager := &auth.Manager{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: time.Duration(cfg.TokenTTLHours) * time.Hour,
		Issuer:   "payton-place",
	}

	verifier := verify.NewTurnstile(cfg.TurnstileSecret)
	if !verifier.Enabled() {
		logger.Warn("turnstile secret not configured, bot verification disabled")
	}

	mailer := notifications.NewMailer(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
		cfg.EmailFrom, cfg.NotificationEmail, cfg.AdminURL, cfg.Timezone,
	)
	if mailer == nil {
		logger.Info("mailer disabled")
	} else {
		logger.Info("mailer enabled", slog.String("to", cfg.NotificationEmail))
	}
	var contactNotifier contact.Notifier
	var quoteNotifier quotes.Notifier
	var requestNotifier servicerequests.Notifier
	if mailer != nil {
		contactNotifier = mailer
		quoteNotifier = mailer
		requestNotifier = mailer
	}

	val := validation.New()

	servicesRepo := services.NewRepository(cols.Services)
	servicesManager := services.NewManager(servicesRepo, cfg.Timezone)
	servicesHandler := services.NewHandler(servicesManager, val, logger, uploads, cacheStore, cacheTTL, debug)

	adminsManager := admins.NewManager(admins.NewRepository(cols.Admins), jwtManager, cfg.Timezone)
	adminsHandler := admins.NewHandler(adminsManager, logger, debug)

	categoriesService := categories.NewService(categories.NewRepository(cols.Categories), cfg.Timezone)
	categoriesHandler := categories.NewHandler(categoriesService, val, logger, debug)

	projectsManager := projects.NewManager(projects.NewRepository(cols.Projects), cfg.Timezone)
	projectsHandler := projects.NewHandler(projectsManager, val, logger, uploads, cacheStore, cacheTTL, debug)

	teamManager := team.NewManager(team.NewRepository(cols.TeamMembers), cfg.Timezone)
	teamHandler := team.NewHandler(teamManager, val, logger, uploads, debug)

	reviewsManager := reviews.NewManager(reviews.NewRepository(cols.Reviews), servicesRepo, verifier, cfg.Timezone)
	reviewsHandler := reviews.NewHandler(reviewsManager, logger, debug)

	contactManager := contact.NewManager(contact.NewRepository(cols.ContactInquiries), verifier, cfg.Timezone)
	contactHandler := contact.NewHandler(contactManager, logger, contactNotifier, debug)

	quotesManager := quotes.NewManager(quotes.NewRepository(cols.QuoteRequests), verifier, cfg.Timezone)
	quotesHandler := quotes.NewHandler(quotesManager, logger, quoteNotifier, debug)

	requestsManager := servicerequests.NewManager(servicerequests.NewRepository(cols.ServiceRequests), servicesRepo, verifier, cfg.Timezone)
	requestsHandler := servicerequests.NewHandler(requestsManager, logger, requestNotifier, debug)

	settingsManager := settings.NewManager(settings.NewRepository(cols.SiteSettings), cfg.Timezone)
	settingsHandler := settings.NewHandler(settingsManager, logger, uploads, debug)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	formsLimiter := middleware.NewRateLimiter(cfg.RateLimitForms, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	adminOnly := middleware.AdminAuth(jwtManager)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		api.Route("/auth", func(a chi.Router) {
			a.Post("/login", adminsHandler.Login)
			a.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Get("/me", adminsHandler.Me)
				protected.With(middleware.RequireSuperAdmin).Post("/register", adminsHandler.Register)
			})
		})

		api.Route("/projects", func(p chi.Router) {
			p.Get("/", projectsHandler.List)
			p.Get("/{id}", projectsHandler.GetByID)
			p.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Post("/", projectsHandler.Create)
				protected.Put("/{id}", projectsHandler.Update)
				protected.Delete("/{id}", projectsHandler.Delete)
			})
		})

		api.Route("/services", func(s chi.Router) {
			s.Get("/", servicesHandler.List)
			s.Get("/{id}", servicesHandler.GetByID)
			s.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Post("/", servicesHandler.Create)
				protected.Put("/{id}", servicesHandler.Update)
				protected.Delete("/{id}", servicesHandler.Delete)
			})
		})

		api.Route("/team", func(t chi.Router) {
			t.Get("/", teamHandler.List)
			t.Get("/{id}", teamHandler.GetByID)
			t.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Post("/", teamHandler.Create)
				protected.Put("/{id}", teamHandler.Update)
				protected.Delete("/{id}", teamHandler.Delete)
			})
		})

		api.Route("/categories", func(c chi.Router) {
			c.Get("/", categoriesHandler.List)
			c.Get("/{id}", categoriesHandler.GetByID)
			c.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Post("/", categoriesHandler.Create)
				protected.Put("/{id}", categoriesHandler.Update)
				protected.Delete("/{id}", categoriesHandler.Delete)
			})
		})

		api.Route("/contact", func(c chi.Router) {
			c.With(formsLimiter.Middleware).Post("/", contactHandler.Submit)
			c.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Get("/", contactHandler.List)
				protected.Patch("/{id}/status", contactHandler.UpdateStatus)
				protected.Delete("/{id}", contactHandler.Delete)
			})
		})

		api.Route("/quote", func(q chi.Router) {
			q.With(formsLimiter.Middleware).Post("/", quotesHandler.Submit)
			q.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Get("/", quotesHandler.List)
				protected.Patch("/{id}/status", quotesHandler.UpdateStatus)
				protected.Delete("/{id}", quotesHandler.Delete)
			})
		})

		api.Route("/service-requests", func(s chi.Router) {
			s.With(formsLimiter.Middleware).Post("/", requestsHandler.Submit)
			s.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Get("/", requestsHandler.List)
				protected.Get("/{id}", requestsHandler.GetByID)
				protected.Patch("/{id}/status", requestsHandler.UpdateStatus)
				protected.Delete("/{id}", requestsHandler.Delete)
			})
		})

		api.Route("/reviews", func(rev chi.Router) {
			rev.With(formsLimiter.Middleware).Post("/", reviewsHandler.Submit)
			rev.Get("/", reviewsHandler.PublicList)
			rev.Group(func(protected chi.Router) {
				protected.Use(adminOnly)
				protected.Get("/admin", reviewsHandler.AdminList)
				protected.Get("/analytics", reviewsHandler.Analytics)
				protected.Patch("/{id}/status", reviewsHandler.UpdateStatus)
				protected.Patch("/{id}", reviewsHandler.Update)
				protected.Delete("/{id}", reviewsHandler.Delete)
			})
		})

		api.Route("/settings", func(s chi.Router) {
			s.Get("/", settingsHandler.Get)
			s.With(adminOnly).Put("/", settingsHandler.Update)
		})
	})

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		transport.WriteError(w, http.StatusNotFound, "Route not found", nil)
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
