package services

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/FringeNet/OpenHands/internal/models"
	"github.com/FringeNet/OpenHands/internal/repositories"
)

// LatestSettingsVersion is the schema version the local cache is migrated to.
// Bump it together with a new step in Run.
const LatestSettingsVersion = 4

// MigrationService carries the local cache forward across breaking settings
// changes. Run is safe to repeat: every step is idempotent, and the version
// marker only ever advances.
type MigrationService interface {
	CurrentVersion(ctx context.Context) int
	UpToDate(ctx context.Context) bool
	Run(ctx context.Context, onForceLogout func())
}

type migrationService struct {
	cache repositories.CacheRepository
}

func NewMigrationService(cache repositories.CacheRepository) MigrationService {
	return &migrationService{cache: cache}
}

// CurrentVersion reads the version marker. An absent, unparsable or negative
// marker reads as 0; the caller is never failed over malformed local state.
func (s *migrationService) CurrentVersion(ctx context.Context) int {
	raw, ok, err := s.cache.Get(ctx, models.KeySettingsVersion)
	if err != nil {
		log.Printf("migrations: version marker read failed: %v", err)
		return 0
	}
	if !ok {
		return 0
	}
	version, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || version < 0 {
		return 0
	}
	return version
}

func (s *migrationService) UpToDate(ctx context.Context) bool {
	return s.CurrentVersion(ctx) == LatestSettingsVersion
}

// Run applies every pending migration step in order. Steps compare against
// the marker read once at entry, so a stale cache catches up in a single
// call; the advanced marker is persisted last. A run interrupted before the
// marker write re-applies its steps safely on the next call.
func (s *migrationService) Run(ctx context.Context, onForceLogout func()) {
	current := s.CurrentVersion(ctx)

	if current < 1 {
		// Breaking default change: the agent choice is forced back to the
		// default, overriding whatever the user had selected.
		s.set(ctx, models.KeyAgent, models.DefaultSettings().Agent)
	}
	if current < 2 {
		if custom, ok := s.get(ctx, models.KeyCustomLLMModel); ok {
			s.set(ctx, models.KeyLLMModel, custom)
		}
		s.remove(ctx, models.KeyCustomLLMModel)
		s.remove(ctx, models.KeyUsingCustomModel)
	}
	if current < 3 {
		s.remove(ctx, models.KeyLegacyToken)
	}
	if current < 4 {
		if onForceLogout != nil {
			onForceLogout()
		}
	}

	if current < LatestSettingsVersion {
		s.set(ctx, models.KeySettingsVersion, strconv.Itoa(LatestSettingsVersion))
	}
}

func (s *migrationService) get(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("migrations: cache read %q failed: %v", key, err)
		return "", false
	}
	return value, ok
}

func (s *migrationService) set(ctx context.Context, key, value string) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("migrations: cache write %q failed: %v", key, err)
	}
}

func (s *migrationService) remove(ctx context.Context, key string) {
	if err := s.cache.Remove(ctx, key); err != nil {
		log.Printf("migrations: cache remove %q failed: %v", key, err)
	}
}
