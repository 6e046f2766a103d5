package prompt

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "charm"

var ErrUnknownTheme = errors.New("unknown theme")

var themes = map[string]func() *huh.Theme{
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// ThemeNames returns the names accepted by [Theme], sorted.
func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

// Theme returns the form theme called name. An empty name selects
// [DefaultTheme].
func Theme(name string) (*huh.Theme, error) {
	if name == "" {
		name = DefaultTheme
	}

	fn, ok := themes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q, want one of %s", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
	}

	return fn(), nil
}
