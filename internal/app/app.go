package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"yggdrasil-server/internal/config"
	"yggdrasil-server/internal/database"
	"yggdrasil-server/internal/handler"
	"yggdrasil-server/internal/model"
	"yggdrasil-server/internal/repository"
	"yggdrasil-server/internal/router"
	"yggdrasil-server/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var (
		db       *database.DB
		checker  handler.HealthChecker
		accounts service.AccountStore
		profiles service.ProfileStore
		sessions service.SessionStore
	)

	if cfg.DatabaseURL != "" {
		slog.Info("connecting to PostgreSQL")
		db, err = database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := db.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}

		userRepo := repository.NewUserRepository(db.Pool)
		profileRepo := repository.NewProfileRepository(db.Pool)
		if err := seedDatabase(context.Background(), userRepo, profileRepo, cfg); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}

		checker = db
		accounts = userRepo
		profiles = profileRepo
		sessions = repository.NewSessionRepository(db.Pool)
		slog.Info("database ready")
	} else {
		slog.Info("no DATABASE_URL set; using in-memory stores")
		memory := repository.NewMemoryStore()
		if err := seedMemoryStore(memory, cfg); err != nil {
			return nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		accounts = memory
		profiles = memory
		sessions = repository.NewMemorySessionStore()
	}

	tickets := repository.NewTicketStore(cfg.JoinTicketTTL)
	tokens := service.NewTokenIssuer(cfg.TokenSecret, cfg.SessionTTL)

	sessionService := service.NewSessionService(accounts, profiles, sessions, tokens, cfg.SessionTTL)
	joinService := service.NewJoinService(profiles, sessions, tickets)
	profileService := service.NewProfileService(profiles, cfg.DefaultTextureURL)

	appRouter := router.New(cfg, router.Handlers{
		Auth:     handler.NewAuthHandler(sessionService),
		Session:  handler.NewSessionHandler(joinService, profileService),
		Profiles: handler.NewProfilesHandler(profileService),
		Skin:     handler.NewSkinHandler(profileService),
		Health:   handler.NewHealthHandler(checker),
	})

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go sessionService.StartCleanupTicker(cleanupCtx, cfg.CleanupPeriod)
	go joinService.StartCleanupTicker(cleanupCtx, cfg.JoinTicketTTL)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	cleanupFuncs := []func(){cleanupCancel}
	if db != nil {
		cleanupFuncs = append(cleanupFuncs, db.Close)
	}

	return &App{server: server, db: db, cleanupFuncs: cleanupFuncs}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return a.Stop(ctx)
}

// Stop drains in-flight requests before anything else: the pool and the
// background sweeps stay up until the last request is done with them.
func (a *App) Stop(ctx context.Context) error {
	err := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// seedUserStore and seedProfileStore are what seeding needs from the
// repositories; account creation is otherwise external to this server.
type seedUserStore interface {
	FindByLogin(ctx context.Context, login string) (model.User, error)
	Create(ctx context.Context, user model.User) error
}

type seedProfileStore interface {
	Create(ctx context.Context, profile model.Profile) error
}

// seedDatabase creates the dev account in Postgres mode, once: a login that
// already resolves is left alone, so restarts are no-ops.
func seedDatabase(ctx context.Context, users seedUserStore, profiles seedProfileStore, cfg *config.Config) error {
	if cfg.SeedEmail == "" || cfg.SeedUsername == "" || cfg.SeedPassword == "" {
		return nil
	}

	if _, err := users.FindByLogin(ctx, cfg.SeedUsername); err == nil {
		return nil
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedPassword), 12)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        cfg.SeedEmail,
		Username:     cfg.SeedUsername,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	if err := profiles.Create(ctx, model.Profile{
		ID:        uuid.NewString(),
		Name:      cfg.SeedUsername,
		UserID:    user.ID,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	slog.Info("seeded dev account", "username", cfg.SeedUsername)
	return nil
}

// seedMemoryStore is the in-memory counterpart, used when no DATABASE_URL
// is configured.
func seedMemoryStore(memory *repository.MemoryStore, cfg *config.Config) error {
	if cfg.SeedEmail == "" || cfg.SeedUsername == "" || cfg.SeedPassword == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedPassword), 12)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        cfg.SeedEmail,
		Username:     cfg.SeedUsername,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	memory.AddUser(user)
	memory.AddProfile(model.Profile{
		ID:        uuid.NewString(),
		Name:      cfg.SeedUsername,
		UserID:    user.ID,
		CreatedAt: now,
	})

	slog.Info("seeded dev account", "username", cfg.SeedUsername)
	return nil
}
