// Command token manages the JWT signing key and issues principal tokens.
//
//	token -generate-key            print a new key as a JWT_SECRET line
//	token -generate-key -to-vault  store a new key in Vault instead
//	token -user u1 -role AUDITOR   issue a token with the configured key
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"event-judging/internal/auth"
	"event-judging/internal/config"
	"event-judging/internal/models"
	"event-judging/internal/vault"
)

func main() {
	generateKey := flag.Bool("generate-key", false, "generate a new ECDSA P-256 signing key")
	toVault := flag.Bool("to-vault", false, "store the generated key in Vault (VAULT_* settings)")
	userID := flag.String("user", "", "user id to issue a token for")
	role := flag.String("role", "", "role the token acts under")
	flag.Parse()

	cfg := &config.Config{}
	if err := config.ParseEnv(cfg); err != nil {
		fail("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch {
	case *generateKey:
		if err := writeKey(ctx, cfg, *toVault); err != nil {
			fail("%v", err)
		}
	case *userID != "":
		if err := issueToken(ctx, cfg, *userID, *role); err != nil {
			fail("%v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func writeKey(ctx context.Context, cfg *config.Config, toVault bool) error {
	key, err := auth.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	pemKey, err := auth.EncodePrivateKeyPEM(key)
	if err != nil {
		return fmt.Errorf("failed to encode key: %w", err)
	}

	if toVault {
		client, err := newVaultClient(cfg)
		if err != nil {
			return err
		}
		if err := client.WriteString(ctx, cfg.Vault.JWTKeyPath, cfg.Vault.JWTKeyField, pemKey); err != nil {
			return err
		}
		fmt.Printf("Signing key stored at %s/%s (field %s)\n", cfg.Vault.KVMount, cfg.Vault.JWTKeyPath, cfg.Vault.JWTKeyField)
		return nil
	}

	fmt.Println("Add this to your .env file (single line, escaped newlines):")
	fmt.Printf("JWT_SECRET=%s\n", strings.ReplaceAll(pemKey, "\n", `\n`))
	return nil
}

func issueToken(ctx context.Context, cfg *config.Config, userID, roleName string) error {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return err
	}

	secret := cfg.JWT.Secret
	if cfg.Vault.Enabled {
		client, err := newVaultClient(cfg)
		if err != nil {
			return err
		}
		if secret, err = client.ReadString(ctx, cfg.Vault.JWTKeyPath, cfg.Vault.JWTKeyField); err != nil {
			return err
		}
	}
	if _, err := auth.ParsePrivateKeyPEM(secret); err != nil {
		return fmt.Errorf("no usable signing key configured: %w", err)
	}

	token, err := auth.NewService(secret, cfg.JWT.Expiration).GenerateToken(userID, role)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func newVaultClient(cfg *config.Config) (*vault.Client, error) {
	return vault.NewClient(&vault.Config{
		Address: cfg.Vault.Address,
		Token:   cfg.Vault.Token,
		KVMount: cfg.Vault.KVMount,
		Timeout: cfg.Vault.Timeout,
	})
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
