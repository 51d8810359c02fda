package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// localSecretManager implements ports.SecretManager using the local
// filesystem. Development only; production uses AWS Secrets Manager or Vault.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSecretManager creates a filesystem-backed secret manager
func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretManager {
	return &localSecretManager{basePath: basePath, logger: logger}
}

// GetSecret reads a secret file, accepting either plain text or the JSON
// form {"value": "...", "tags": {...}}.
func (m *localSecretManager) GetSecret(_ context.Context, secretPath string) (*ports.Secret, error) {
	filePath := filepath.Join(m.basePath, secretPath)

	m.logger.Debug("reading secret from filesystem", zap.String("path", secretPath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("read secret: %w", err)
	}

	var parsed struct {
		Value string            `json:"value"`
		Tags  map[string]string `json:"tags"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Value != "" {
		return &ports.Secret{Value: parsed.Value, Version: "local", Metadata: parsed.Tags}, nil
	}

	return &ports.Secret{
		Value:   strings.TrimSpace(string(data)),
		Version: "local",
	}, nil
}
