package subtle

import "github.com/subtlecrypto/engine/internal/provider"

// Engine is the WebCrypto Subtle operation dispatcher. It owns a
// process-wide Key Store and brokers every operation to a Primitive
// Provider, normalizing and precondition-checking synchronously
// before ever touching the provider.
type Engine struct {
	provider provider.Provider
	store    *KeyStore
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithKeyStore overrides the Engine's Key Store, mainly for tests
// that want to inspect store contents directly.
func WithKeyStore(s *KeyStore) Option {
	return func(e *Engine) { e.store = s }
}

// New builds an Engine around p, the Primitive Provider it will call
// out to for every operation.
func New(p provider.Provider, opts ...Option) *Engine {
	e := &Engine{provider: p, store: NewKeyStore()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefault builds an Engine backed by the standard-library Default
// provider.
func NewDefault() *Engine {
	return New(provider.New())
}
