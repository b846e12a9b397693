package providers

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/apache/tsfile-website/internal/config"
)

// BasicProvider handles basic username/password authentication.
type BasicProvider struct{}

func NewBasicProvider() *BasicProvider { return &BasicProvider{} }

func (p *BasicProvider) Type() config.AuthType { return config.AuthTypeBasic }

func (p *BasicProvider) CreateAuth(authConfig *config.AuthConfig) (transport.AuthMethod, error) {
	if err := p.ValidateConfig(authConfig); err != nil {
		return nil, err
	}
	return &http.BasicAuth{
		Username: authConfig.Username,
		Password: authConfig.Password,
	}, nil
}

func (p *BasicProvider) ValidateConfig(authConfig *config.AuthConfig) error {
	if authConfig.Username == "" {
		return fmt.Errorf("basic authentication requires a username")
	}
	if authConfig.Password == "" {
		return fmt.Errorf("basic authentication requires a password")
	}
	return nil
}
