// Package embed hydrates bundles with statement embeddings when they arrive
// without vectors. It is an adapter for the external embedding collaborator:
// the triage core itself only ever sees finished vectors and never calls a
// provider.
package embed

import (
	"context"

	"github.com/crux-triage/crux/internal/model"
)

// Provider defines the interface for embedding providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// IsAvailable checks if the provider is properly configured and
	// reachable.
	IsAvailable(ctx context.Context) bool
}

// NewProvider creates a provider from configuration. An empty provider name
// disables embedding; the caller must then supply vectors in the bundle.
func NewProvider(cfg model.EmbedConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "":
		return nil, nil
	default:
		return nil, &UnknownProviderError{Name: cfg.Provider}
	}
}

// UnknownProviderError reports an unsupported provider name.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return "unknown embedding provider: " + e.Name + " (supported: openai)"
}
