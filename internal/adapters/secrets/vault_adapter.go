package secrets

import (
	"context"
	"fmt"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"

	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// VaultConfig contains configuration for the HashiCorp Vault adapter
type VaultConfig struct {
	// Vault server address (e.g., "https://vault.example.com:8200")
	Address string

	// Token authentication
	Token string

	// Vault namespace (Vault Enterprise)
	Namespace string

	// KV secrets engine mount path (default: "secret")
	MountPath string

	// KV version: "v1" or "v2" (default: "v2")
	KVVersion string

	// Cache TTL
	CacheTTL time.Duration

	// Enable caching
	EnableCache bool

	// TLS configuration
	TLSSkipVerify bool
}

// DefaultVaultConfig returns default configuration for the Vault adapter
func DefaultVaultConfig(address string) *VaultConfig {
	return &VaultConfig{
		Address:     address,
		MountPath:   "secret",
		KVVersion:   "v2",
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// vaultSecretManager implements ports.SecretManager for HashiCorp Vault KV
type vaultSecretManager struct {
	client *vault.Client
	config *VaultConfig
	logger *zap.Logger
	cache  *secretCache
}

// NewVaultSecretManager creates a Vault-backed secret manager using token auth
func NewVaultSecretManager(cfg *VaultConfig, logger *zap.Logger) (ports.SecretManager, error) {
	vaultCfg := vault.DefaultConfig()
	vaultCfg.Address = cfg.Address
	if cfg.TLSSkipVerify {
		if err := vaultCfg.ConfigureTLS(&vault.TLSConfig{Insecure: true}); err != nil {
			return nil, fmt.Errorf("configure vault tls: %w", err)
		}
	}

	client, err := vault.NewClient(vaultCfg)
	if err != nil {
		return nil, fmt.Errorf("create vault client: %w", err)
	}
	client.SetToken(cfg.Token)
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	return &vaultSecretManager{
		client: client,
		config: cfg,
		logger: logger,
		cache:  newSecretCache(cfg.CacheTTL, cfg.EnableCache),
	}, nil
}

// GetSecret reads the "value" key at the given KV path.
func (m *vaultSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if secret, ok := m.cache.get(path); ok {
		return secret, nil
	}

	m.logger.Debug("fetching secret from vault", zap.String("path", path))

	fullPath := m.config.MountPath + "/" + path
	if m.config.KVVersion != "v1" {
		fullPath = m.config.MountPath + "/data/" + path
	}

	read, err := m.client.Logical().ReadWithContext(ctx, fullPath)
	if err != nil {
		return nil, fmt.Errorf("read vault secret %s: %w", path, err)
	}
	if read == nil || read.Data == nil {
		return nil, fmt.Errorf("secret not found: %s", path)
	}

	data := read.Data
	if m.config.KVVersion != "v1" {
		inner, ok := read.Data["data"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected kv v2 payload at %s", path)
		}
		data = inner
	}

	value, ok := data["value"].(string)
	if !ok {
		return nil, fmt.Errorf("secret %s has no string \"value\" key", path)
	}

	secret := &ports.Secret{Value: value, Version: "vault"}
	m.cache.put(path, secret)
	return secret, nil
}
