package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/99designs/keyring"
	"gorm.io/gorm/logger"

	"github.com/FringeNet/OpenHands/internal/database"
	"github.com/FringeNet/OpenHands/internal/models"
	"github.com/FringeNet/OpenHands/internal/remote"
	"github.com/FringeNet/OpenHands/internal/repositories"
	"github.com/FringeNet/OpenHands/internal/services"
)

// App wires the settings subsystem together and is the surface UI layers
// bind against.
type App struct {
	ctx     context.Context
	svc     *services.Services
	client  remote.Client
	dbClose func() error
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup opens the local cache, builds the remote client from the
// environment and runs cache migrations. Migrations complete before any
// settings reconciliation is reachable.
func (a *App) startup(ctx context.Context) error {
	a.ctx = ctx

	db, err := database.Init(database.Config{
		Path:     os.Getenv("OPENHANDS_DB_PATH"),
		LogLevel: logger.Warn,
	})
	if err != nil {
		return fmt.Errorf("open local cache: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		a.dbClose = sqlDB.Close
	}

	cache := repositories.NewCacheRepository(db)
	if ring, err := keyring.Open(keyring.Config{ServiceName: repositories.KeyringServiceName}); err == nil {
		cache = repositories.NewKeyringCache(ring, cache)
	} else {
		log.Printf("keyring unavailable, keeping credentials in the sqlite cache: %v", err)
	}

	baseURL := os.Getenv("OPENHANDS_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	a.client, err = remote.NewHTTPClient(baseURL, os.Getenv("OPENHANDS_API_TOKEN"), http.DefaultClient)
	if err != nil {
		return fmt.Errorf("build remote client: %w", err)
	}

	a.svc = services.NewServices(cache, a.client)

	if !a.svc.Migrations.UpToDate(ctx) {
		a.svc.Migrations.Run(ctx, a.forceLogout)
	}
	return nil
}

// forceLogout invalidates the remote session. Wired as the migration side
// effect for the re-authentication breaking change.
func (a *App) forceLogout() {
	if err := a.client.Logout(a.ctx); err != nil {
		log.Printf("forced logout failed: %v", err)
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			log.Printf("failed to close local cache: %v", err)
		}
		a.dbClose = nil
	}
}

// GetDefaultSettings returns the built-in settings.
func (a *App) GetDefaultSettings() models.Settings {
	return a.svc.Settings.DefaultSettings()
}

// GetSettings returns the current effective settings.
func (a *App) GetSettings() models.Settings {
	return a.svc.Settings.GetSettings(a.ctx)
}

// SaveSettings persists a partial settings update and reports success.
func (a *App) SaveSettings(partial models.PartialSettings) bool {
	return a.svc.Settings.SaveSettings(a.ctx, partial)
}

// RunMigrations applies any pending local cache migrations, invoking
// onForceLogout when a step requires re-authentication.
func (a *App) RunMigrations(onForceLogout func()) {
	a.svc.Migrations.Run(a.ctx, onForceLogout)
}

// GetCurrentVersion returns the local cache schema version.
func (a *App) GetCurrentVersion() int {
	return a.svc.Migrations.CurrentVersion(a.ctx)
}

// IsUpToDate reports whether the local cache schema is current.
func (a *App) IsUpToDate() bool {
	return a.svc.Migrations.UpToDate(a.ctx)
}

// ListModels returns the selectable model identifiers.
func (a *App) ListModels() []string {
	return a.svc.Options.Models(a.ctx)
}

// ListAgents returns the selectable agent implementations.
func (a *App) ListAgents() []string {
	return a.svc.Options.Agents(a.ctx)
}

// ListSecurityAnalyzers returns the selectable security analyzers.
func (a *App) ListSecurityAnalyzers() []string {
	return a.svc.Options.SecurityAnalyzers(a.ctx)
}
