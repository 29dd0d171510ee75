package services

import (
	"context"
	"log"

	"github.com/FringeNet/OpenHands/internal/models"
	"github.com/FringeNet/OpenHands/internal/remote"
	"github.com/FringeNet/OpenHands/internal/repositories"
)

// SettingsService reconciles the effective settings across the remote store,
// the local cache and the built-in defaults. Neither operation ever fails:
// reads always produce a fully populated value and writes report success as
// a bool.
type SettingsService interface {
	DefaultSettings() models.Settings
	GetSettings(ctx context.Context) models.Settings
	SaveSettings(ctx context.Context, partial models.PartialSettings) bool
}

type settingsService struct {
	cache  repositories.CacheRepository
	remote remote.Client
}

func NewSettingsService(cache repositories.CacheRepository, client remote.Client) SettingsService {
	return &settingsService{cache: cache, remote: client}
}

func (s *settingsService) DefaultSettings() models.Settings {
	return models.DefaultSettings()
}

// GetSettings resolves the effective settings. The remote store wins whenever
// it is reachable: fields missing from a sparse remote payload fall back to
// defaults, not to the local cache. The cache is consulted only when the
// remote store is unreachable or has nothing stored.
func (s *settingsService) GetSettings(ctx context.Context) models.Settings {
	payload, err := s.remote.Fetch(ctx)
	if err == nil && payload != nil {
		return overlayRemote(models.DefaultSettings(), payload)
	}
	if err != nil {
		log.Printf("settings: remote fetch failed, falling back to local cache: %v", err)
	}
	return s.fromCache(ctx)
}

func overlayRemote(base models.Settings, payload *remote.RemoteSettings) models.Settings {
	if payload.LLMModel != nil {
		base.LLMModel = *payload.LLMModel
	}
	if payload.LLMBaseURL != nil {
		base.LLMBaseURL = *payload.LLMBaseURL
	}
	if payload.Agent != nil {
		base.Agent = *payload.Agent
	}
	if payload.Language != nil {
		base.Language = *payload.Language
	}
	if payload.LLMAPIKey != nil {
		base.LLMAPIKey = *payload.LLMAPIKey
	}
	if payload.ConfirmationMode != nil {
		base.ConfirmationMode = *payload.ConfirmationMode
	}
	if payload.SecurityAnalyzer != nil {
		base.SecurityAnalyzer = *payload.SecurityAnalyzer
	}
	return base
}

func (s *settingsService) fromCache(ctx context.Context) models.Settings {
	out := models.DefaultSettings()
	if v := s.cached(ctx, models.KeyLLMModel); v != "" {
		out.LLMModel = v
	}
	if v := s.cached(ctx, models.KeyLLMBaseURL); v != "" {
		out.LLMBaseURL = v
	}
	if v := s.cached(ctx, models.KeyAgent); v != "" {
		out.Agent = v
	}
	if v := s.cached(ctx, models.KeyLanguage); v != "" {
		out.Language = v
	}
	if v := s.cached(ctx, models.KeyLLMAPIKey); v != "" {
		out.LLMAPIKey = v
	}
	// Strict string comparison, not generic truthiness.
	out.ConfirmationMode = s.cached(ctx, models.KeyConfirmationMode) == "true"
	if v := s.cached(ctx, models.KeySecurityAnalyzer); v != "" {
		out.SecurityAnalyzer = v
	}
	return out
}

func (s *settingsService) cached(ctx context.Context, key string) string {
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("settings: cache read %q failed: %v", key, err)
		return ""
	}
	if !ok {
		return ""
	}
	return value
}

// SaveSettings merges a partial update over the current effective settings
// and submits the full object to the remote store. Unknown keys are dropped,
// fields omitted from the partial keep their current value (notably the API
// key), and nothing is written to the local cache on any outcome: a failed
// save must not desynchronize the cache from what the user believes was
// saved.
func (s *settingsService) SaveSettings(ctx context.Context, partial models.PartialSettings) bool {
	merged := s.GetSettings(ctx)
	models.ApplyPartial(&merged, partial)

	ok, err := s.remote.Store(ctx, merged)
	if err != nil {
		log.Printf("settings: remote store failed: %v", err)
		return false
	}
	return ok
}
