package ai

import (
	"sort"
	"sync"
)

// ProviderFactory creates provider instances
type ProviderFactory interface {
	// Create creates a new provider instance with the given config
	Create(config *ProviderConfig) (Provider, error)

	// Type returns the provider type this factory creates
	Type() string

	// ValidateConfig validates configuration for this provider type
	ValidateConfig(config *ProviderConfig) error

	// DefaultConfig returns a default configuration
	DefaultConfig() *ProviderConfig
}

// Registry maps provider types to their factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry creates an empty provider registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

// Register adds a provider factory to the registry
func (r *Registry) Register(factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := factory.Type()
	if _, exists := r.factories[name]; exists {
		return &ProviderError{
			Type:     ErrTypeRegistration,
			Message:  "provider already registered",
			Provider: name,
		}
	}

	r.factories[name] = factory
	return nil
}

// Factory returns the factory registered for name
func (r *Registry) Factory(name string) (ProviderFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, &ProviderError{
			Type:     ErrTypeNotFound,
			Message:  "provider not registered",
			Provider: name,
		}
	}
	return factory, nil
}

// Create validates config and builds a provider of type name. A nil config
// uses the factory defaults.
func (r *Registry) Create(name string, config *ProviderConfig) (Provider, error) {
	factory, err := r.Factory(name)
	if err != nil {
		return nil, err
	}

	if config == nil {
		config = factory.DefaultConfig()
	}
	if err := factory.ValidateConfig(config); err != nil {
		return nil, err
	}
	return factory.Create(config)
}

// List returns all registered provider names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a provider is registered
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}
