package cli

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/macropower/fileformat/pkg/config"
	"github.com/macropower/fileformat/pkg/prompt"
)

// palette holds the colors of a form theme that help output reuses.
type palette struct {
	accent, flag, subtle color.Color
}

var palettes = map[string]palette{
	"charm": {
		accent: charmtone.Charple,
		flag:   charmtone.Dolly,
		subtle: charmtone.Squid,
	},
	"dracula": {
		accent: lipgloss.Color("#bd93f9"),
		flag:   lipgloss.Color("#ff79c6"),
		subtle: lipgloss.Color("#6272a4"),
	},
	"catppuccin": {
		accent: lipgloss.Color("#cba6f7"),
		flag:   lipgloss.Color("#f5c2e7"),
		subtle: lipgloss.Color("#6c7086"),
	},
	"base": {
		accent: lipgloss.Color("5"),
		flag:   lipgloss.Color("6"),
		subtle: lipgloss.Color("8"),
	},
}

// ColorSchemeFunc returns the help and error colors for the configured form
// theme. The configuration is read from $FILEFORMAT_CONFIG or the default
// path, since flags are not parsed yet.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	path, ok := os.LookupEnv(flagToEnvName("config"))
	if !ok || path == "" {
		path = config.GetPath()
	}

	theme := prompt.DefaultTheme

	cfg, err := config.Load(path)
	if err == nil {
		theme = cfg.Prompt.Theme
	}

	return ThemeColorScheme(theme, c)
}

// ThemeColorScheme builds a [fang.ColorScheme] for the named form theme.
func ThemeColorScheme(theme string, c lipgloss.LightDarkFunc) fang.ColorScheme {
	if theme == "base16" {
		theme = "base"
	}

	p, ok := palettes[theme]
	if !ok {
		p = palettes[prompt.DefaultTheme]
	}

	text := c(charmtone.Pepper, charmtone.Salt)

	return fang.ColorScheme{
		Base:           text,
		Title:          p.accent,
		Codeblock:      c(charmtone.Salt, lipgloss.Color("#2F2E36")),
		Program:        p.accent,
		Command:        p.accent,
		DimmedArgument: p.subtle,
		Comment:        p.subtle,
		Flag:           p.flag,
		Argument:       text,
		Description:    text,
		FlagDefault:    p.subtle,
		QuotedString:   p.flag,
		ErrorHeader: [2]color.Color{
			charmtone.Salt,
			charmtone.Cherry,
		},
	}
}
