package secrets

import (
	"fmt"
	"os"
)

// ProviderEnvVar is the environment variable used to specify the secrets provider type.
const ProviderEnvVar = "RESTFIRE_SECRETS_PROVIDER"

// ProviderType represents an enum of the types of available secrets providers.
type ProviderType string

const (
	// EnvironmentType represents the environment variable secret provider.
	EnvironmentType ProviderType = "environment"

	// NoneType represents the disabled secret provider.
	NoneType ProviderType = "none"
)

// ProviderTypeFromEnv returns the provider type selected through the
// RESTFIRE_SECRETS_PROVIDER environment variable, defaulting to the
// environment provider.
func ProviderTypeFromEnv() ProviderType {
	if value := os.Getenv(ProviderEnvVar); value != "" {
		return ProviderType(value)
	}
	return EnvironmentType
}

// CreateProvider creates the specified provider type.
func CreateProvider(providerType ProviderType) (Provider, error) {
	switch providerType {
	case EnvironmentType:
		return NewEnvironmentProvider(), nil
	case NoneType:
		return NewNoneProvider(), nil
	default:
		return nil, fmt.Errorf("unknown secrets provider type: %s", providerType)
	}
}
