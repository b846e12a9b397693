package site

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSiteIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, []string{"/", "/zh/"}, s.LocaleKeys())
}

func TestNavbarName(t *testing.T) {
	s := Default()

	en, err := s.NavbarName("/")
	require.NoError(t, err)
	assert.Equal(t, "en", en)

	zh, err := s.NavbarName("/zh/")
	require.NoError(t, err)
	assert.Equal(t, "zh", zh)

	_, err = s.NavbarName("/fr/")
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	s := Site{
		Base: "docs",
		Locales: map[string]Locale{
			"/zh/": {Lang: "zh-CN", Title: ""},
			"/cn/": {Lang: "zh-Hans", Title: "dup"},
			"bad":  {Lang: "not a tag!", Title: "x"},
		},
		Head:  []HeadTag{{Tag: " "}},
		Alias: map[string]string{"@x": ""},
	}
	err := s.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"site base",
		"root locale",
		`locale "/zh/" has an empty title`,
		"both map to navbar",
		`locale key "bad"`,
		"invalid language tag",
		"head tag #0",
		"alias",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestHeadTagJSONTuple(t *testing.T) {
	data, err := json.Marshal([]HeadTag{
		{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/favicon.ico"}},
		{Tag: "script", Attrs: map[string]string{"type": "text/javascript"}, Content: "var a;"},
		{Tag: "meta"},
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`[["link",{"href":"/favicon.ico","rel":"icon"}],["script",{"type":"text/javascript"},"var a;"],["meta",{}]]`,
		string(data))
}
