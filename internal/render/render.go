package render

import (
	"github.com/apache/tsfile-website/internal/config"
)

// Render loads the navbars named by cfg, builds the document and writes it to the
// configured output directory.
func Render(cfg *config.Config) (Output, error) {
	navbars, err := config.LoadNavbars(cfg)
	if err != nil {
		return Output{}, err
	}
	doc, err := Build(cfg, navbars)
	if err != nil {
		return Output{}, err
	}
	return Write(doc, cfg.Output.Directory, cfg.Output.Format)
}
