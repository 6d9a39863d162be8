package secrets_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restfire/restfire/pkg/secrets"
)

func TestEnvironmentProvider_GetSecret(t *testing.T) { //nolint:paralleltest // mutates process env
	provider := secrets.NewEnvironmentProvider()
	ctx := context.Background()

	t.Run("successful retrieval", func(t *testing.T) { //nolint:paralleltest // mutates process env
		t.Setenv(secrets.EnvVarPrefix+"api_token", "test_value")

		result, err := provider.GetSecret(ctx, "api_token")
		assert.NoError(t, err)
		assert.Equal(t, "test_value", result)
	})

	t.Run("secret not found", func(t *testing.T) { //nolint:paralleltest // mutates process env
		result, err := provider.GetSecret(ctx, "nonexistent_secret")
		assert.Error(t, err)
		assert.Empty(t, result)
		assert.True(t, secrets.IsNotFoundError(err))
	})

	t.Run("empty secret name", func(t *testing.T) { //nolint:paralleltest // mutates process env
		result, err := provider.GetSecret(ctx, "")
		assert.Error(t, err)
		assert.Empty(t, result)
		assert.Contains(t, err.Error(), "secret name cannot be empty")
	})

	t.Run("empty environment variable value", func(t *testing.T) { //nolint:paralleltest // mutates process env
		t.Setenv(secrets.EnvVarPrefix+"empty_secret", "")

		result, err := provider.GetSecret(ctx, "empty_secret")
		assert.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestEnvironmentProvider_ReadOnly(t *testing.T) {
	t.Parallel()

	provider := secrets.NewEnvironmentProvider()
	ctx := context.Background()

	err := provider.SetSecret(ctx, "name", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment provider is read-only")

	err = provider.DeleteSecret(ctx, "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment provider is read-only")

	assert.Contains(t, provider.SetSecret(ctx, "", "v").Error(), "secret name cannot be empty")
	assert.Contains(t, provider.DeleteSecret(ctx, "").Error(), "secret name cannot be empty")
}

func TestEnvironmentProvider_ListSecrets(t *testing.T) { //nolint:paralleltest // mutates process env
	provider := secrets.NewEnvironmentProvider()

	t.Setenv(secrets.EnvVarPrefix+"zeta", "1")
	t.Setenv(secrets.EnvVarPrefix+"alpha", "2")

	descriptions, err := provider.ListSecrets(context.Background())
	require.NoError(t, err)

	var keys []string
	for _, d := range descriptions {
		keys = append(keys, d.Key)
	}
	assert.Contains(t, keys, "alpha")
	assert.Contains(t, keys, "zeta")
	assert.True(t, sort.StringsAreSorted(keys))
}

func TestEnvironmentProvider_Capabilities(t *testing.T) {
	t.Parallel()

	caps := secrets.NewEnvironmentProvider().Capabilities()
	assert.True(t, caps.CanRead)
	assert.True(t, caps.CanList)
	assert.False(t, caps.CanWrite)
	assert.False(t, caps.CanDelete)

	assert.NoError(t, secrets.NewEnvironmentProvider().Cleanup())
}

func TestLoadAll(t *testing.T) { //nolint:paralleltest // mutates process env
	t.Setenv(secrets.EnvVarPrefix+"api_key", "sk-secret-123")
	t.Setenv(secrets.EnvVarPrefix+"db_password", "hunter2")

	values, err := secrets.LoadAll(context.Background(), secrets.NewEnvironmentProvider())
	require.NoError(t, err)
	assert.Equal(t, "sk-secret-123", values["api_key"])
	assert.Equal(t, "hunter2", values["db_password"])
}

func TestLoadAll_NoneProviderIsEmpty(t *testing.T) {
	t.Parallel()

	values, err := secrets.LoadAll(context.Background(), secrets.NewNoneProvider())
	require.NoError(t, err)
	assert.Empty(t, values)
}
