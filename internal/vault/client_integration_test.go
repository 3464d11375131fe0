//go:build integration

package vault_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-judging/internal/auth"
	"event-judging/internal/models"
	"event-judging/internal/testutil"
	"event-judging/internal/vault"
)

func TestSigningKeyRoundTripThroughVault(t *testing.T) {
	containers := testutil.SetupTestContainers(t)
	defer containers.Cleanup(t)

	ctx := context.Background()
	client, err := vault.NewClient(&vault.Config{
		Address: containers.VaultAddr,
		Token:   containers.VaultToken,
		Timeout: 10 * time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, client.HealthCheck(ctx))

	key, err := auth.GenerateKey()
	require.NoError(t, err)
	pemKey, err := auth.EncodePrivateKeyPEM(key)
	require.NoError(t, err)

	require.NoError(t, client.WriteString(ctx, "event-judging/jwt", "private_key", pemKey))

	stored, err := client.ReadString(ctx, "event-judging/jwt", "private_key")
	require.NoError(t, err)
	assert.Equal(t, pemKey, stored)

	// a token signed with the original key validates with the stored one
	token, err := auth.NewServiceWithKey(key, time.Hour).GenerateToken("user-1", models.RoleBoard)
	require.NoError(t, err)
	claims, err := auth.NewService(stored, time.Hour).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleBoard, claims.Role)

	_, err = client.ReadString(ctx, "event-judging/jwt", "missing_field")
	assert.Error(t, err)
	_, err = client.ReadString(ctx, "event-judging/nothing-here", "private_key")
	assert.Error(t, err)
}
