// Package secrets implements the SecretManager port against local files,
// AWS Secrets Manager, and HashiCorp Vault.
package secrets

import (
	"sync"
	"time"

	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// secretCache is a TTL cache shared by the remote backends so gateway
// credentials are not re-fetched on every cold path.
type secretCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	enabled bool
}

type cacheEntry struct {
	secret    *ports.Secret
	expiresAt time.Time
}

func newSecretCache(ttl time.Duration, enabled bool) *secretCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &secretCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		enabled: enabled,
	}
}

func (c *secretCache) get(path string) (*ports.Secret, bool) {
	if !c.enabled {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[path]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.secret, true
}

func (c *secretCache) put(path string, secret *ports.Secret) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = &cacheEntry{
		secret:    secret,
		expiresAt: time.Now().Add(c.ttl),
	}
}
