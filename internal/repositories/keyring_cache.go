package repositories

import (
	"context"
	"errors"
	"log"

	"github.com/99designs/keyring"

	"github.com/FringeNet/OpenHands/internal/models"
)

// KeyringServiceName identifies this client in the OS credential store.
const KeyringServiceName = "openhands"

// keyringCache decorates a CacheRepository so that secret-valued keys live in
// the OS keyring instead of the sqlite cache. Keyring failures degrade to
// "absent" rather than surfacing: the cache contract never fails a read over
// a missing credential backend.
type keyringCache struct {
	ring keyring.Keyring
	next CacheRepository
}

func NewKeyringCache(ring keyring.Keyring, next CacheRepository) CacheRepository {
	return &keyringCache{ring: ring, next: next}
}

func isSecretKey(key string) bool {
	return key == models.KeyLLMAPIKey || key == models.KeyLegacyToken
}

func (r *keyringCache) Get(ctx context.Context, key string) (string, bool, error) {
	if !isSecretKey(key) {
		return r.next.Get(ctx, key)
	}
	item, err := r.ring.Get(key)
	if err != nil {
		if !errors.Is(err, keyring.ErrKeyNotFound) {
			log.Printf("keyring: read %q failed: %v", key, err)
		}
		return "", false, nil
	}
	return string(item.Data), true, nil
}

func (r *keyringCache) Set(ctx context.Context, key, value string) error {
	if !isSecretKey(key) {
		return r.next.Set(ctx, key, value)
	}
	if err := r.ring.Set(keyring.Item{Key: key, Data: []byte(value)}); err != nil {
		log.Printf("keyring: write %q failed: %v", key, err)
	}
	return nil
}

func (r *keyringCache) Remove(ctx context.Context, key string) error {
	if !isSecretKey(key) {
		return r.next.Remove(ctx, key)
	}
	if err := r.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		log.Printf("keyring: remove %q failed: %v", key, err)
	}
	return nil
}
