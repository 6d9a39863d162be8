// Package secrets contains the secrets management logic for restfire.
// Secrets populate the highest-precedence variable scope; a provider that
// fails to load degrades to "no secrets" rather than blocking resolution.
package secrets

import (
	"context"
	"errors"
	"fmt"
)

// EnvVarPrefix is the prefix for secrets sourced from environment variables.
const EnvVarPrefix = "RESTFIRE_SECRET_"

// Provider describes a type which can manage secrets.
type Provider interface {
	GetSecret(ctx context.Context, name string) (string, error)
	SetSecret(ctx context.Context, name, value string) error
	DeleteSecret(ctx context.Context, name string) error
	ListSecrets(ctx context.Context) ([]SecretDescription, error)
	Cleanup() error
	Capabilities() ProviderCapabilities
}

// SecretDescription is the listable metadata of a stored secret; the
// value itself is never listed.
type SecretDescription struct {
	Key         string
	Description string
}

// ProviderCapabilities reports which operations a provider supports.
type ProviderCapabilities struct {
	CanRead    bool
	CanWrite   bool
	CanDelete  bool
	CanList    bool
	CanCleanup bool
}

// ErrSecretNotFound is wrapped by providers when a named secret is absent.
var ErrSecretNotFound = errors.New("secret not found")

// SecretNotFoundError builds the standard not-found error for a name.
func SecretNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrSecretNotFound, name)
}

// IsNotFoundError checks whether the error means the secret is absent,
// as opposed to the provider failing.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSecretNotFound)
}

// LoadAll pulls every listable secret from the provider into a flat map,
// suitable for the secrets scope of a resolution context. Providers that
// cannot list return an empty map without error.
func LoadAll(ctx context.Context, provider Provider) (map[string]string, error) {
	if !provider.Capabilities().CanList {
		return map[string]string{}, nil
	}

	descriptions, err := provider.ListSecrets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets: %w", err)
	}

	values := make(map[string]string, len(descriptions))
	for _, d := range descriptions {
		value, err := provider.GetSecret(ctx, d.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to read secret %s: %w", d.Key, err)
		}
		values[d.Key] = value
	}
	return values, nil
}
