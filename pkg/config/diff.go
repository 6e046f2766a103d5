package config

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"

	"github.com/macropower/fileformat/api"
)

// Diff returns a unified diff from the default configuration to the file at
// path. It is empty when the file matches the defaults byte for byte.
func Diff(path string) (string, error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	return udiff.Unified("default", path, string(defaultConfigYAML), string(data)), nil
}
