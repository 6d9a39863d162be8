package secrets

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
)

// EnvironmentProvider reads secrets from environment variables carrying
// the EnvVarPrefix. It is read-only: writes and deletes are rejected so
// secret material never leaks into the process environment by accident.
type EnvironmentProvider struct {
	prefix string
}

// NewEnvironmentProvider creates a read-only provider over prefixed
// environment variables.
func NewEnvironmentProvider() *EnvironmentProvider {
	return &EnvironmentProvider{prefix: EnvVarPrefix}
}

// GetSecret retrieves a secret from the corresponding environment variable.
func (p *EnvironmentProvider) GetSecret(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("secret name cannot be empty")
	}

	value, ok := os.LookupEnv(p.prefix + name)
	if !ok {
		return "", SecretNotFoundError(name)
	}
	return value, nil
}

// SetSecret is rejected: the environment provider is read-only.
func (*EnvironmentProvider) SetSecret(_ context.Context, name, _ string) error {
	if name == "" {
		return fmt.Errorf("secret name cannot be empty")
	}
	return fmt.Errorf("environment provider is read-only: cannot set secret %s", name)
}

// DeleteSecret is rejected: the environment provider is read-only.
func (*EnvironmentProvider) DeleteSecret(_ context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("secret name cannot be empty")
	}
	return fmt.Errorf("environment provider is read-only: cannot delete secret %s", name)
}

// ListSecrets enumerates the prefixed environment variables, sorted by key.
func (p *EnvironmentProvider) ListSecrets(_ context.Context) ([]SecretDescription, error) {
	var descriptions []SecretDescription
	for _, entry := range os.Environ() {
		if !strings.HasPrefix(entry, p.prefix) {
			continue
		}
		key, _, ok := strings.Cut(strings.TrimPrefix(entry, p.prefix), "=")
		if !ok || key == "" {
			continue
		}
		descriptions = append(descriptions, SecretDescription{
			Key:         key,
			Description: "environment variable " + p.prefix + key,
		})
	}
	sort.Slice(descriptions, func(i, j int) bool {
		return descriptions[i].Key < descriptions[j].Key
	})
	return descriptions, nil
}

// Cleanup is a no-op for the environment provider.
func (*EnvironmentProvider) Cleanup() error {
	return nil
}

// Capabilities reports read and list support only.
func (*EnvironmentProvider) Capabilities() ProviderCapabilities {
	return ProviderCapabilities{CanRead: true, CanList: true}
}
