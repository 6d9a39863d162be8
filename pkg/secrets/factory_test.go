package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProvider(t *testing.T) {
	t.Parallel()

	p, err := CreateProvider(EnvironmentType)
	require.NoError(t, err)
	assert.IsType(t, &EnvironmentProvider{}, p)

	p, err = CreateProvider(NoneType)
	require.NoError(t, err)
	assert.IsType(t, &NoneProvider{}, p)

	_, err = CreateProvider(ProviderType("vault"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown secrets provider type")
}

//nolint:paralleltest // mutates process env
func TestProviderTypeFromEnv(t *testing.T) {
	t.Setenv(ProviderEnvVar, "")
	assert.Equal(t, EnvironmentType, ProviderTypeFromEnv())

	t.Setenv(ProviderEnvVar, "none")
	assert.Equal(t, NoneType, ProviderTypeFromEnv())
}
