package search

// Default returns the TsFile docsearch options with the Chinese UI strings.
func Default() Options {
	return Options{
		AppID:     "JLT9R2YGAE",
		APIKey:    "5d062598828a610e4f9e6d9d3389ae45",
		IndexName: "iotdb-apache_tsfile",
		Locales: map[string]LocaleOptions{
			"/zh/": {
				Placeholder: "搜索文档",
				Translations: Translations{
					Button: ButtonTranslations{
						ButtonText:      "搜索文档",
						ButtonAriaLabel: "搜索文档",
					},
					Modal: ModalTranslations{
						SearchBox: SearchBoxTranslations{
							ResetButtonTitle:      "清除查询条件",
							ResetButtonAriaLabel:  "清除查询条件",
							CancelButtonText:      "取消",
							CancelButtonAriaLabel: "取消",
						},
						StartScreen: StartScreenTranslations{
							RecentSearchesTitle:             "搜索历史",
							NoRecentSearchesText:            "没有搜索历史",
							SaveRecentSearchButtonTitle:     "保存至搜索历史",
							RemoveRecentSearchButtonTitle:   "从搜索历史中移除",
							FavoriteSearchesTitle:           "收藏",
							RemoveFavoriteSearchButtonTitle: "从收藏中移除",
						},
						ErrorScreen: ErrorScreenTranslations{
							TitleText: "无法获取结果",
							HelpText:  "你可能需要检查你的网络连接",
						},
						Footer: FooterTranslations{
							SelectText:   "选择",
							NavigateText: "切换",
							CloseText:    "关闭",
							SearchByText: "搜索提供者",
						},
						NoResultsScreen: NoResultsScreenTranslations{
							NoResultsText:                "无法找到相关结果",
							SuggestedQueryText:           "你可以尝试查询",
							ReportMissingResultsText:     "你认为该查询应该有结果？",
							ReportMissingResultsLinkText: "点击反馈",
						},
					},
				},
			},
		},
	}
}
