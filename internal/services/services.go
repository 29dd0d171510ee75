package services

import (
	"github.com/FringeNet/OpenHands/internal/remote"
	"github.com/FringeNet/OpenHands/internal/repositories"
)

// Services aggregates the settings-facing services behind one container.
type Services struct {
	Settings   SettingsService
	Migrations MigrationService
	Options    OptionsService
}

// NewServices constructs the service container over the injected local-cache
// capability and remote store client.
func NewServices(cache repositories.CacheRepository, client remote.Client) *Services {
	return &Services{
		Settings:   NewSettingsService(cache, client),
		Migrations: NewMigrationService(cache),
		Options:    NewOptionsService(client),
	}
}
