package config

import "github.com/apache/tsfile-website/internal/foundation/normalization"

// RenderFormat selects the encoding of the rendered generator configuration.
type RenderFormat string

const (
	RenderFormatJSON RenderFormat = "json"
	RenderFormatYAML RenderFormat = "yaml"
)

var renderFormatNormalizer = normalization.NewNormalizer(map[string]RenderFormat{
	"json": RenderFormatJSON,
	"yaml": RenderFormatYAML,
	"yml":  RenderFormatYAML,
}, "")

// NormalizeRenderFormat returns "" for unknown formats.
func NormalizeRenderFormat(raw string) RenderFormat { return renderFormatNormalizer.Normalize(raw) }
