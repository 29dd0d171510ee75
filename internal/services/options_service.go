package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/FringeNet/OpenHands/internal/assets"
	"github.com/FringeNet/OpenHands/internal/remote"
)

// OptionsService lists the catalogs a settings UI selects from. Remote
// catalogs win; the embedded fallback keeps the lists usable offline. No
// operation fails.
type OptionsService interface {
	Models(ctx context.Context) []string
	Agents(ctx context.Context) []string
	SecurityAnalyzers(ctx context.Context) []string
}

type optionsService struct {
	remote   remote.Client
	fallback optionsCatalog
}

type optionsCatalog struct {
	Models            []string `json:"models"`
	Agents            []string `json:"agents"`
	SecurityAnalyzers []string `json:"securityAnalyzers"`
}

func NewOptionsService(client remote.Client) OptionsService {
	var fallback optionsCatalog
	if err := json.Unmarshal(assets.OptionsData, &fallback); err != nil {
		// The embedded catalog ships with the binary; a parse failure here
		// means a broken build, but the service still degrades to empty lists.
		log.Printf("options: parse embedded catalog: %v", err)
	}
	return &optionsService{remote: client, fallback: fallback}
}

func (s *optionsService) Models(ctx context.Context) []string {
	return s.fetch(ctx, remote.OptionsModels, s.fallback.Models)
}

func (s *optionsService) Agents(ctx context.Context) []string {
	return s.fetch(ctx, remote.OptionsAgents, s.fallback.Agents)
}

func (s *optionsService) SecurityAnalyzers(ctx context.Context) []string {
	return s.fetch(ctx, remote.OptionsSecurityAnalyzers, s.fallback.SecurityAnalyzers)
}

func (s *optionsService) fetch(ctx context.Context, kind string, fallback []string) []string {
	values, err := s.remote.Options(ctx, kind)
	if err != nil {
		log.Printf("options: remote %s catalog unavailable, using embedded fallback: %v", kind, err)
		return fallback
	}
	return values
}
