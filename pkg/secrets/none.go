package secrets

import (
	"context"
	"fmt"
)

// NoneProvider is the provider used when secrets are disabled. Reads
// report not-found and writes are rejected, so resolution simply sees an
// empty secrets scope.
type NoneProvider struct{}

// NewNoneProvider creates a provider that stores nothing.
func NewNoneProvider() *NoneProvider {
	return &NoneProvider{}
}

// GetSecret always reports not found.
func (*NoneProvider) GetSecret(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("secret name cannot be empty")
	}
	return "", fmt.Errorf("%w (none provider doesn't store secrets)", SecretNotFoundError(name))
}

// SetSecret is rejected.
func (*NoneProvider) SetSecret(_ context.Context, name, _ string) error {
	if name == "" {
		return fmt.Errorf("secret name cannot be empty")
	}
	return fmt.Errorf("none provider doesn't support storing secrets")
}

// DeleteSecret is rejected.
func (*NoneProvider) DeleteSecret(_ context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("secret name cannot be empty")
	}
	return fmt.Errorf("none provider doesn't support deleting secrets")
}

// ListSecrets returns an empty list.
func (*NoneProvider) ListSecrets(_ context.Context) ([]SecretDescription, error) {
	return []SecretDescription{}, nil
}

// Cleanup is a no-op.
func (*NoneProvider) Cleanup() error {
	return nil
}

// Capabilities reports list support only (the list is always empty).
func (*NoneProvider) Capabilities() ProviderCapabilities {
	return ProviderCapabilities{CanList: true}
}
