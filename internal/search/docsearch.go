// Package search defines the option record passed verbatim to the docsearch widget.
package search

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// PluginName is the generator plugin that receives Options.
const PluginName = "docsearch"

// Options configures the hosted search widget. Translation keys keep the widget's
// own camelCase names so they can be copied from its documentation.
type Options struct {
	AppID     string                   `yaml:"app_id" json:"appId"`
	APIKey    string                   `yaml:"api_key" json:"apiKey"`
	IndexName string                   `yaml:"index_name" json:"indexName"`
	Locales   map[string]LocaleOptions `yaml:"locales,omitempty" json:"locales,omitempty"`
}

type LocaleOptions struct {
	Placeholder  string       `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Translations Translations `yaml:"translations" json:"translations"`
}

type Translations struct {
	Button ButtonTranslations `yaml:"button" json:"button"`
	Modal  ModalTranslations  `yaml:"modal" json:"modal"`
}

type ButtonTranslations struct {
	ButtonText      string `yaml:"buttonText,omitempty" json:"buttonText,omitempty"`
	ButtonAriaLabel string `yaml:"buttonAriaLabel,omitempty" json:"buttonAriaLabel,omitempty"`
}

type ModalTranslations struct {
	SearchBox       SearchBoxTranslations       `yaml:"searchBox" json:"searchBox"`
	StartScreen     StartScreenTranslations     `yaml:"startScreen" json:"startScreen"`
	ErrorScreen     ErrorScreenTranslations     `yaml:"errorScreen" json:"errorScreen"`
	Footer          FooterTranslations          `yaml:"footer" json:"footer"`
	NoResultsScreen NoResultsScreenTranslations `yaml:"noResultsScreen" json:"noResultsScreen"`
}

type SearchBoxTranslations struct {
	ResetButtonTitle      string `yaml:"resetButtonTitle,omitempty" json:"resetButtonTitle,omitempty"`
	ResetButtonAriaLabel  string `yaml:"resetButtonAriaLabel,omitempty" json:"resetButtonAriaLabel,omitempty"`
	CancelButtonText      string `yaml:"cancelButtonText,omitempty" json:"cancelButtonText,omitempty"`
	CancelButtonAriaLabel string `yaml:"cancelButtonAriaLabel,omitempty" json:"cancelButtonAriaLabel,omitempty"`
}

type StartScreenTranslations struct {
	RecentSearchesTitle             string `yaml:"recentSearchesTitle,omitempty" json:"recentSearchesTitle,omitempty"`
	NoRecentSearchesText            string `yaml:"noRecentSearchesText,omitempty" json:"noRecentSearchesText,omitempty"`
	SaveRecentSearchButtonTitle     string `yaml:"saveRecentSearchButtonTitle,omitempty" json:"saveRecentSearchButtonTitle,omitempty"`
	RemoveRecentSearchButtonTitle   string `yaml:"removeRecentSearchButtonTitle,omitempty" json:"removeRecentSearchButtonTitle,omitempty"`
	FavoriteSearchesTitle           string `yaml:"favoriteSearchesTitle,omitempty" json:"favoriteSearchesTitle,omitempty"`
	RemoveFavoriteSearchButtonTitle string `yaml:"removeFavoriteSearchButtonTitle,omitempty" json:"removeFavoriteSearchButtonTitle,omitempty"`
}

type ErrorScreenTranslations struct {
	TitleText string `yaml:"titleText,omitempty" json:"titleText,omitempty"`
	HelpText  string `yaml:"helpText,omitempty" json:"helpText,omitempty"`
}

type FooterTranslations struct {
	SelectText   string `yaml:"selectText,omitempty" json:"selectText,omitempty"`
	NavigateText string `yaml:"navigateText,omitempty" json:"navigateText,omitempty"`
	CloseText    string `yaml:"closeText,omitempty" json:"closeText,omitempty"`
	SearchByText string `yaml:"searchByText,omitempty" json:"searchByText,omitempty"`
}

type NoResultsScreenTranslations struct {
	NoResultsText                string `yaml:"noResultsText,omitempty" json:"noResultsText,omitempty"`
	SuggestedQueryText           string `yaml:"suggestedQueryText,omitempty" json:"suggestedQueryText,omitempty"`
	ReportMissingResultsText     string `yaml:"reportMissingResultsText,omitempty" json:"reportMissingResultsText,omitempty"`
	ReportMissingResultsLinkText string `yaml:"reportMissingResultsLinkText,omitempty" json:"reportMissingResultsLinkText,omitempty"`
}

// Validate requires the credentials and index name, and that every locale override
// targets a declared locale.
func (o *Options) Validate(localeKeys []string) error {
	var errs []error
	required := []struct{ field, value string }{
		{"app_id", o.AppID},
		{"api_key", o.APIKey},
		{"index_name", o.IndexName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, errors.ValidationError(fmt.Sprintf("search: %s must not be empty", r.field)).Build())
		}
	}
	for key := range o.Locales {
		if !slices.Contains(localeKeys, key) {
			errs = append(errs, errors.ValidationError(fmt.Sprintf("search: locale override %q is not a declared locale", key)).Build())
		}
	}
	return stderrors.Join(errs...)
}
