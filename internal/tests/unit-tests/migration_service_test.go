package unit_tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FringeNet/OpenHands/internal/models"
	"github.com/FringeNet/OpenHands/internal/services"
	"github.com/FringeNet/OpenHands/internal/tests/mocks"
)

func TestMigrationService_Run_FreshLegacyCache(t *testing.T) {
	cache := mocks.NewMemoryCache(map[string]string{
		models.KeyCustomLLMModel:   "gpt-x",
		models.KeyUsingCustomModel: "true",
		models.KeyLegacyToken:      "legacy-token",
	})
	service := services.NewMigrationService(cache)
	logouts := 0

	service.Run(context.Background(), func() { logouts++ })

	assert.Equal(t, "gpt-x", cache.Data[models.KeyLLMModel])
	assert.Equal(t, models.DefaultSettings().Agent, cache.Data[models.KeyAgent])
	assert.NotContains(t, cache.Data, models.KeyCustomLLMModel)
	assert.NotContains(t, cache.Data, models.KeyUsingCustomModel)
	assert.NotContains(t, cache.Data, models.KeyLegacyToken)
	assert.Equal(t, "4", cache.Data[models.KeySettingsVersion])
	assert.Equal(t, 1, logouts)
	assert.True(t, service.UpToDate(context.Background()))
}

func TestMigrationService_Run_Idempotent(t *testing.T) {
	cache := mocks.NewMemoryCache(map[string]string{
		models.KeyCustomLLMModel:   "gpt-x",
		models.KeyUsingCustomModel: "true",
	})
	service := services.NewMigrationService(cache)
	logouts := 0

	service.Run(context.Background(), func() { logouts++ })
	after := cache.Snapshot()

	service.Run(context.Background(), func() { logouts++ })
	assert.Equal(t, after, cache.Snapshot())
	assert.Equal(t, 1, logouts)
}

func TestMigrationService_Run_OnlyPendingStepsApply(t *testing.T) {
	cache := mocks.NewMemoryCache(map[string]string{
		models.KeySettingsVersion: "2",
		models.KeyAgent:           "MyCustomAgent",
		models.KeyLegacyToken:     "legacy-token",
	})
	service := services.NewMigrationService(cache)
	logouts := 0

	service.Run(context.Background(), func() { logouts++ })

	// Steps below version 2 must not re-run.
	assert.Equal(t, "MyCustomAgent", cache.Data[models.KeyAgent])
	assert.NotContains(t, cache.Data, models.KeyLegacyToken)
	assert.Equal(t, "4", cache.Data[models.KeySettingsVersion])
	assert.Equal(t, 1, logouts)
}

func TestMigrationService_Run_CurrentCacheUntouched(t *testing.T) {
	cache := &mocks.CacheRepositoryMock{
		GetFunc: func(ctx context.Context, key string) (string, bool, error) {
			assert.Equal(t, models.KeySettingsVersion, key)
			return "4", true, nil
		},
		SetFunc: func(ctx context.Context, key, value string) error {
			t.Fatalf("unexpected cache write %q=%q on current cache", key, value)
			return nil
		},
		RemoveFunc: func(ctx context.Context, key string) error {
			t.Fatalf("unexpected cache remove %q on current cache", key)
			return nil
		},
	}
	service := services.NewMigrationService(cache)

	service.Run(context.Background(), func() {
		t.Fatal("unexpected logout on current cache")
	})
}

func TestMigrationService_Run_MarkerNeverDecreases(t *testing.T) {
	cache := mocks.NewMemoryCache(map[string]string{
		models.KeySettingsVersion: "9",
	})
	service := services.NewMigrationService(cache)

	service.Run(context.Background(), nil)
	assert.Equal(t, "9", cache.Data[models.KeySettingsVersion])
}

func TestMigrationService_Run_NilCallback(t *testing.T) {
	cache := mocks.NewMemoryCache(nil)
	service := services.NewMigrationService(cache)

	service.Run(context.Background(), nil)
	assert.Equal(t, "4", cache.Data[models.KeySettingsVersion])
}

func TestMigrationService_CurrentVersion_MalformedMarker(t *testing.T) {
	for _, raw := range []string{"abc", "-3", "1.5", ""} {
		cache := mocks.NewMemoryCache(map[string]string{
			models.KeySettingsVersion: raw,
		})
		service := services.NewMigrationService(cache)
		assert.Equal(t, 0, service.CurrentVersion(context.Background()), "marker %q", raw)
	}
}

func TestMigrationService_CurrentVersion_AbsentMarker(t *testing.T) {
	service := services.NewMigrationService(mocks.NewMemoryCache(nil))
	assert.Equal(t, 0, service.CurrentVersion(context.Background()))
	assert.False(t, service.UpToDate(context.Background()))
}

func TestMigrationService_CurrentVersion_CacheErrorReadsAsZero(t *testing.T) {
	cache := &mocks.CacheRepositoryMock{
		GetFunc: func(ctx context.Context, key string) (string, bool, error) {
			return "", false, errors.New("cache broken")
		},
	}
	service := services.NewMigrationService(cache)
	assert.Equal(t, 0, service.CurrentVersion(context.Background()))
}

func TestMigrationService_Run_NoCustomModelLeavesModelAlone(t *testing.T) {
	cache := mocks.NewMemoryCache(map[string]string{
		models.KeyLLMModel: "user-picked-model",
	})
	service := services.NewMigrationService(cache)

	service.Run(context.Background(), nil)
	assert.Equal(t, "user-picked-model", cache.Data[models.KeyLLMModel])
}
