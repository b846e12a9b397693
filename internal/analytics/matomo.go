package analytics

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// Tracker methods such as setCustomDimension must be pushed before trackPageView.
const matomoSnippet = `
var _paq = window._paq = window._paq || [];
{{- if .DoNotTrack }}
_paq.push(["setDoNotTrack", true]);
{{- end }}
{{- if .DisableCookies }}
_paq.push(["disableCookies"]);
{{- end }}
_paq.push(['trackPageView']);
_paq.push(['enableLinkTracking']);
(function() {
  var u={{ .TrackerURL | quote }};
  _paq.push(['setTrackerUrl', u+'matomo.php']);
  _paq.push(['setSiteId', {{ .SiteID | squote }}]);
  var d=document, g=d.createElement('script'), s=d.getElementsByTagName('script')[0];
  g.async=true; g.src=u+'matomo.js'; s.parentNode.insertBefore(g,s);
})();
`

var matomoTemplate = template.Must(template.New("matomo").Funcs(sprig.TxtFuncMap()).Parse(matomoSnippet))

// RenderMatomo renders the inline Matomo bootstrap script.
func RenderMatomo(cfg MatomoConfig) (string, error) {
	var b strings.Builder
	if err := matomoTemplate.Execute(&b, cfg); err != nil {
		return "", errors.RenderError("failed to render matomo snippet").WithCause(err).Build()
	}
	return b.String(), nil
}
