package providers

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/apache/tsfile-website/internal/config"
)

// DefaultTokenUsername is sent with token auth when no username is configured.
// GitHub ignores the username for personal access and app installation tokens.
const DefaultTokenUsername = "x-access-token"

// TokenProvider handles token-based authentication over HTTPS.
type TokenProvider struct{}

func NewTokenProvider() *TokenProvider { return &TokenProvider{} }

func (p *TokenProvider) Type() config.AuthType { return config.AuthTypeToken }

// CreateAuth creates token authentication from the configuration.
func (p *TokenProvider) CreateAuth(authConfig *config.AuthConfig) (transport.AuthMethod, error) {
	if err := p.ValidateConfig(authConfig); err != nil {
		return nil, err
	}
	username := authConfig.Username
	if username == "" {
		username = DefaultTokenUsername
	}
	return &http.BasicAuth{Username: username, Password: authConfig.Token}, nil
}

func (p *TokenProvider) ValidateConfig(authConfig *config.AuthConfig) error {
	if authConfig.Token == "" {
		return fmt.Errorf("token authentication requires a token")
	}
	return nil
}
