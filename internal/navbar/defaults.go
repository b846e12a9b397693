package navbar

// Defaults returns the built-in menus keyed by navbar name.
func Defaults() map[string]Navbar {
	return map[string]Navbar{
		"en": English(),
		"zh": Chinese(),
	}
}

// English is the menu for the root locale.
func English() Navbar {
	return Navbar{
		{Text: "Documentation", Link: "/UserGuide/latest/QuickStart/QuickStart"},
		{Text: "Download", Link: "/Download/"},
		{
			Text: "ASF",
			Children: []Entry{
				{Text: "Foundation", Target: "_self", Link: "https://www.apache.org/"},
				{Text: "License", Target: "_self", Link: "https://www.apache.org/licenses/"},
				{Text: "Security", Link: "https://www.apache.org/security/"},
				{Text: "Sponsorship", Link: "https://www.apache.org/foundation/sponsorship.html"},
				{Text: "Thanks", Target: "_self", Link: "https://www.apache.org/foundation/thanks.html"},
				{Text: "Current  Events", Link: "https://www.apache.org/events/current-event"},
				{Text: "Privacy", Link: "https://privacy.apache.org/policies/privacy-policy-public.html"},
			},
		},
	}
}

// Chinese is the menu for the /zh/ locale.
func Chinese() Navbar {
	return Navbar{
		{Text: "文档", Link: "/zh/UserGuide/latest/QuickStart/QuickStart"},
		{
			Text: "社区",
			Children: []Entry{
				{Text: "关于社区", Link: "/zh/Community/About"},
				{Text: "交流与反馈", Link: "/zh/Community/Feedback"},
			},
		},
		{
			Text: "开发",
			Children: []Entry{
				{Text: "成为开发者", Link: "/zh/Development/Community-Project-Committers"},
				{Text: "Power by", Link: "/zh/Development/Powered-By"},
			},
		},
		{
			Text: "ASF",
			Children: []Entry{
				{Text: "基金会", Link: "https://www.apache.org/"},
				{Text: "许可证", Link: "https://www.apache.org/licenses/"},
				{Text: "安全", Link: "https://www.apache.org/security/"},
				{Text: "赞助", Link: "https://www.apache.org/foundation/sponsorship.html"},
				{Text: "致谢", Link: "https://www.apache.org/foundation/thanks.html"},
				{Text: "活动", Link: "https://www.apache.org/events/current-event"},
			},
		},
	}
}
