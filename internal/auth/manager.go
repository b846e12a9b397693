// Package auth resolves the configured credentials into a go-git transport method.
package auth

import (
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/apache/tsfile-website/internal/auth/providers"
	"github.com/apache/tsfile-website/internal/config"
)

// Manager provides a high-level interface for authentication operations.
type Manager struct {
	registry *providers.AuthProviderRegistry
}

// NewManager creates a new authentication manager with the standard providers.
func NewManager() *Manager {
	return &Manager{
		registry: providers.NewAuthProviderRegistry(),
	}
}

// CreateAuth creates authentication for the given configuration.
func (m *Manager) CreateAuth(authCfg *config.AuthConfig) (transport.AuthMethod, error) {
	return m.registry.CreateAuth(authCfg)
}
