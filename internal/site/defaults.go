package site

// Default returns the Apache TsFile site definition.
func Default() Site {
	return Site{
		Base:  "/",
		Theme: "vuepress-theme-hope",
		Locales: map[string]Locale{
			"/": {
				Lang:        "en-US",
				Title:       "Apache TsFile",
				Description: "File Format for Internet of Things",
			},
			"/zh/": {
				Lang:        "zh-CN",
				Title:       "Apache TsFile",
				Description: "物联网时序数据文件格式",
			},
		},
		Head: []HeadTag{
			{Tag: "link", Attrs: map[string]string{"rel": "icon", "href": "/favicon.ico"}},
		},
		Alias: map[string]string{
			"@theme-hope/components/PageFooter": "./components/PageFooter.vue",
		},
	}
}
