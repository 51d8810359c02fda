package ports

import "context"

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value    string
	Version  string
	Metadata map[string]string
}

// SecretManager defines the port for retrieving secrets from a secret
// management service. Implementations exist for local files (development),
// AWS Secrets Manager, and HashiCorp Vault; they are responsible for
// authentication and for caching with an appropriate TTL.
//
// Path format depends on the backend:
//   - local: relative file path under the configured base directory
//   - AWS:   secret name, e.g. "payment-gateway/testpay/api-key"
//   - Vault: KV v2 path under the mount, e.g. "payment-gateway/testpay"
type SecretManager interface {
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
