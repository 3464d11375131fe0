package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/vault/api"
)

// Client wraps the HashiCorp Vault API for reading KV v2 secrets
type Client struct {
	client  *api.Client
	kvMount string
	timeout time.Duration
}

// Config holds Vault configuration
type Config struct {
	Address string
	Token   string
	KVMount string
	Timeout time.Duration
}

// NewClient creates a new Vault client
func NewClient(cfg *Config) (*Client, error) {
	config := api.DefaultConfig()
	config.Address = cfg.Address
	if cfg.Timeout > 0 {
		config.Timeout = cfg.Timeout
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	mount := cfg.KVMount
	if mount == "" {
		mount = "secret"
	}

	return &Client{client: client, kvMount: mount, timeout: config.Timeout}, nil
}

// ReadString reads one string field of a KV v2 secret
func (c *Client) ReadString(ctx context.Context, path, field string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	secret, err := c.client.KVv2(c.kvMount).Get(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s/%s: %w", c.kvMount, path, err)
	}

	raw, ok := secret.Data[field]
	if !ok {
		return "", fmt.Errorf("secret %s/%s has no field %q", c.kvMount, path, field)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("secret %s/%s field %q is not a non-empty string", c.kvMount, path, field)
	}
	return value, nil
}

// WriteString stores a single field KV v2 secret as a new version
func (c *Client) WriteString(ctx context.Context, path, field, value string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.client.KVv2(c.kvMount).Put(ctx, path, map[string]interface{}{field: value}); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", c.kvMount, path, err)
	}
	return nil
}

// HealthCheck checks if Vault is reachable and unsealed
func (c *Client) HealthCheck(ctx context.Context) error {
	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}
	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}
	return nil
}
