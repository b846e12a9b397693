package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/apache/tsfile-website/internal/analytics"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/navbar"
	"github.com/apache/tsfile-website/internal/search"
	"github.com/apache/tsfile-website/internal/site"
)

const exampleHeader = `# tsfile-site configuration.
# Values of the form ${VAR} are expanded from the environment (.env and .env.local are loaded first).
`

func exampleConfig(s site.Site) Config {
	opts := search.Default()
	dotfiles := true
	return Config{
		Version:   CurrentVersion,
		Site:      s,
		Navbar:    NavbarConfig{Dir: DefaultNavbarDir},
		Search:    &opts,
		Analytics: analytics.Default(),
		Output:    OutputConfig{Directory: DefaultOutputDir, Format: RenderFormatJSON},
		Deploy: DeployConfig{
			SourceDir:         DefaultSourceDir,
			Repo:              DefaultRepo,
			Branch:            DefaultBranch,
			Message:           DefaultMessage,
			Dotfiles:          &dotfiles,
			Remote:            DefaultRemote,
			Depth:             1,
			Author:            AuthorConfig{Name: DefaultAuthorName, Email: DefaultAuthorEmail},
			Auth:              &AuthConfig{Type: AuthTypeToken, Token: "${GITHUB_TOKEN}"},
			MaxRetries:        0,
			RetryBackoff:      RetryBackoffLinear,
			RetryInitialDelay: DefaultRetryInitial,
			RetryMaxDelay:     DefaultRetryMaxDelay,
		},
		Links:   LinksConfig{SourceDir: DefaultDocsDir, Timeout: DefaultLinkTimeout},
		History: HistoryConfig{Database: ".tsfile-site/history.db"},
		Monitoring: MonitoringConfig{
			Logging: MonitoringLogging{Level: LogLevelInfo, Format: LogFormatText},
		},
	}
}

// Init writes the example configuration to configPath and the default navbars next
// to it. Existing files are kept unless force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			UserAction().Build()
	}

	example := Example()
	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FileSystemError("failed to create config directory").WithCause(err).WithContext("path", dir).Build()
		}
	}
	if err := os.WriteFile(configPath, append([]byte(exampleHeader), data...), 0o600); err != nil {
		return errors.FileSystemError("failed to write config file").WithCause(err).WithContext("path", configPath).Build()
	}

	navDir := filepath.Join(filepath.Dir(configPath), example.Navbar.Dir)
	for name, nav := range navbar.Defaults() {
		if navbar.Exists(navDir, name) && !force {
			continue
		}
		if err := navbar.Save(navDir, name, nav); err != nil {
			return err
		}
	}
	return nil
}
