package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/apache/tsfile-website/internal/config"
)

// SSHProvider handles SSH key authentication.
type SSHProvider struct{}

func NewSSHProvider() *SSHProvider { return &SSHProvider{} }

func (p *SSHProvider) Type() config.AuthType { return config.AuthTypeSSH }

// CreateAuth loads the private key. The key passphrase, if any, is read from
// TSFILE_SITE_SSH_PASSPHRASE.
func (p *SSHProvider) CreateAuth(authConfig *config.AuthConfig) (transport.AuthMethod, error) {
	keyPath := p.keyPath(authConfig)
	publicKeys, err := ssh.NewPublicKeysFromFile("git", keyPath, os.Getenv("TSFILE_SITE_SSH_PASSPHRASE"))
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key from %s: %w", keyPath, err)
	}
	return publicKeys, nil
}

func (p *SSHProvider) ValidateConfig(authConfig *config.AuthConfig) error {
	keyPath := p.keyPath(authConfig)
	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
		return fmt.Errorf("SSH key file does not exist: %s", keyPath)
	}
	return nil
}

func (p *SSHProvider) keyPath(authConfig *config.AuthConfig) string {
	if authConfig.KeyPath != "" {
		return authConfig.KeyPath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ssh", "id_rsa")
}
