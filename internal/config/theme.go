package config

import "sort"

// Theme holds the ANSI colours used by the terminal UI.
type Theme struct {
	Primary  string
	Success  string
	Warning  string
	Error    string
	Muted    string
	Emphasis string
}

var themes = map[string]Theme{
	"default": {
		Primary:  "213", // Purple
		Success:  "114", // Green
		Warning:  "220", // Yellow
		Error:    "196", // Red
		Muted:    "241", // Grey
		Emphasis: "212", // Light Pink
	},
	"dark": {
		Primary:  "105",
		Success:  "78",
		Warning:  "214",
		Error:    "160",
		Muted:    "239",
		Emphasis: "147",
	},
	"light": {
		Primary:  "135",
		Success:  "150",
		Warning:  "222",
		Error:    "210",
		Muted:    "245",
		Emphasis: "219",
	},
	"monochrome": {
		Primary:  "245",
		Success:  "252",
		Warning:  "241",
		Error:    "255",
		Muted:    "238",
		Emphasis: "255",
	},
}

// GetTheme returns a predefined theme by name, or the default theme.
func GetTheme(name string) Theme {
	if theme, ok := themes[name]; ok {
		return theme
	}
	return themes["default"]
}

// ListThemes returns the available theme names.
func ListThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
