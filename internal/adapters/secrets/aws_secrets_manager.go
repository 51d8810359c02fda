package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"

	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
)

// AWSConfig contains configuration for the AWS Secrets Manager adapter
type AWSConfig struct {
	// AWS Region (e.g., "ap-northeast-2")
	Region string

	// Optional: AWS profile name (for local development)
	Profile string

	// Optional: custom endpoint (for LocalStack testing)
	Endpoint string

	// Cache TTL for secrets (default: 5 minutes)
	CacheTTL time.Duration

	// Enable caching
	EnableCache bool
}

// DefaultAWSConfig returns default configuration
func DefaultAWSConfig(region string) *AWSConfig {
	return &AWSConfig{
		Region:      region,
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// awsSecretsManager implements ports.SecretManager for AWS Secrets Manager
type awsSecretsManager struct {
	client *secretsmanager.Client
	logger *zap.Logger
	cache  *secretCache
}

// NewAWSSecretsManager creates an AWS-backed secret manager
func NewAWSSecretsManager(ctx context.Context, cfg *AWSConfig, logger *zap.Logger) (ports.SecretManager, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &awsSecretsManager{
		client: client,
		logger: logger,
		cache:  newSecretCache(cfg.CacheTTL, cfg.EnableCache),
	}, nil
}

// GetSecret retrieves a secret by name from AWS Secrets Manager
func (m *awsSecretsManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if secret, ok := m.cache.get(path); ok {
		return secret, nil
	}

	m.logger.Debug("fetching secret from AWS Secrets Manager", zap.String("path", path))

	out, err := m.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", path, err)
	}

	secret := &ports.Secret{
		Value:   aws.ToString(out.SecretString),
		Version: aws.ToString(out.VersionId),
	}
	m.cache.put(path, secret)
	return secret, nil
}
