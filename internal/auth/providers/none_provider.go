package providers

import (
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/apache/tsfile-website/internal/config"
)

// NoneProvider handles anonymous access, e.g. a local bare repository or file:// remote.
type NoneProvider struct{}

func NewNoneProvider() *NoneProvider { return &NoneProvider{} }

func (p *NoneProvider) Type() config.AuthType { return config.AuthTypeNone }

func (p *NoneProvider) CreateAuth(_ *config.AuthConfig) (transport.AuthMethod, error) {
	return nil, nil
}

func (p *NoneProvider) ValidateConfig(_ *config.AuthConfig) error { return nil }
