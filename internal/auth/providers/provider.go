// Package providers implements one git transport authentication method per auth type.
package providers

import (
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// AuthProvider turns the deploy credentials of one auth type into a transport method.
type AuthProvider interface {
	Type() config.AuthType

	// ValidateConfig checks the fields this auth type needs.
	ValidateConfig(authCfg *config.AuthConfig) error

	// CreateAuth returns nil, nil for anonymous access.
	CreateAuth(authCfg *config.AuthConfig) (transport.AuthMethod, error)
}

// AuthProviderRegistry holds one provider per auth type.
type AuthProviderRegistry struct {
	providers map[config.AuthType]AuthProvider
}

// NewAuthProviderRegistry registers the none, ssh, token and basic providers.
func NewAuthProviderRegistry() *AuthProviderRegistry {
	r := &AuthProviderRegistry{providers: map[config.AuthType]AuthProvider{}}
	for _, p := range []AuthProvider{NewNoneProvider(), NewSSHProvider(), NewTokenProvider(), NewBasicProvider()} {
		r.Register(p)
	}
	return r
}

// Register replaces any provider of the same type.
func (r *AuthProviderRegistry) Register(p AuthProvider) { r.providers[p.Type()] = p }

// CreateAuth resolves authCfg with the provider of its type. A nil config or an
// empty type means anonymous access, which is what a push over a local path or
// a credential helper needs.
func (r *AuthProviderRegistry) CreateAuth(authCfg *config.AuthConfig) (transport.AuthMethod, error) {
	if authCfg == nil || authCfg.Type == "" {
		authCfg = &config.AuthConfig{Type: config.AuthTypeNone}
	}
	p, ok := r.providers[authCfg.Type]
	if !ok {
		return nil, authError(authCfg.Type, "unsupported authentication type", nil)
	}
	if err := p.ValidateConfig(authCfg); err != nil {
		return nil, authError(authCfg.Type, "invalid deploy credentials", err)
	}
	method, err := p.CreateAuth(authCfg)
	if err != nil {
		return nil, authError(authCfg.Type, "failed to create authentication", err)
	}
	return method, nil
}

// Auth errors need a user fix, so the publisher never retries them.
func authError(t config.AuthType, msg string, cause error) error {
	b := errors.NewError(errors.CategoryAuth, msg).
		WithContext("auth_type", string(t)).
		UserAction()
	if cause != nil {
		b = b.WithCause(cause)
	}
	return b.Build()
}
