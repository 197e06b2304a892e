package main

import (
	"fmt"

	"github.com/phrazzld/finances-api/internal/config"
)

// loadAppConfig loads configuration from path, or from the default
// locations when path is empty.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
