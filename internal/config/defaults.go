package config

import "github.com/apache/tsfile-website/internal/site"

// Defaults mirror the layout of the website repository: sources under src/ and the
// generator's build output under src/.vuepress/dist.
const (
	DefaultNavbarDir     = "navbar"
	DefaultOutputDir     = "src/.vuepress/generated"
	DefaultSourceDir     = "src/.vuepress/dist"
	DefaultDocsDir       = "src"
	DefaultRepo          = "https://github.com/apache/tsfile-website.git"
	DefaultBranch        = "asf-staging"
	DefaultMessage       = "Site checkin for project tsfile-website"
	DefaultRemote        = "origin"
	DefaultAuthorName    = "tsfile-site"
	DefaultAuthorEmail   = "dev@tsfile.apache.org"
	DefaultLinkTimeout   = "10s"
	DefaultDeploySubject = "tsfile.site.deploy"
	DefaultLinksSubject  = "tsfile.site.links"
	DefaultRetryInitial  = "1s"
	DefaultRetryMaxDelay = "30s"
)

// applyDefaults fills omitted fields. It runs after normalization so canonical
// values drive the defaults.
func applyDefaults(cfg *Config) {
	if cfg.Site.Base == "" {
		cfg.Site.Base = "/"
	}
	if cfg.Navbar.Dir == "" {
		cfg.Navbar.Dir = DefaultNavbarDir
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = RenderFormatJSON
	}

	d := &cfg.Deploy
	if d.SourceDir == "" {
		d.SourceDir = DefaultSourceDir
	}
	if d.Repo == "" {
		d.Repo = DefaultRepo
	}
	if d.Branch == "" {
		d.Branch = DefaultBranch
	}
	if d.Message == "" {
		d.Message = DefaultMessage
	}
	if d.Remote == "" {
		d.Remote = DefaultRemote
	}
	if d.Depth <= 0 {
		d.Depth = 1
	}
	if d.Author.Name == "" {
		d.Author.Name = DefaultAuthorName
	}
	if d.Author.Email == "" {
		d.Author.Email = DefaultAuthorEmail
	}
	if d.RetryBackoff == "" {
		d.RetryBackoff = RetryBackoffLinear
	}
	if d.RetryInitialDelay == "" {
		d.RetryInitialDelay = DefaultRetryInitial
	}
	if d.RetryMaxDelay == "" {
		d.RetryMaxDelay = DefaultRetryMaxDelay
	}

	if cfg.Links.SourceDir == "" {
		cfg.Links.SourceDir = DefaultDocsDir
	}
	if cfg.Links.Timeout == "" {
		cfg.Links.Timeout = DefaultLinkTimeout
	}

	if n := cfg.Notify; n != nil {
		if n.Subject == "" {
			n.Subject = DefaultDeploySubject
		}
		if n.LinkSubject == "" {
			n.LinkSubject = DefaultLinksSubject
		}
	}

	if cfg.Monitoring.Logging.Level == "" {
		cfg.Monitoring.Logging.Level = LogLevelInfo
	}
	if cfg.Monitoring.Logging.Format == "" {
		cfg.Monitoring.Logging.Format = LogFormatText
	}
}

// Example returns the TsFile website configuration written by Init.
func Example() Config {
	return exampleConfig(site.Default())
}
