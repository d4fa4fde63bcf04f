package cmd

import (
	"fmt"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/config"
)

// NewClient builds an API client from a loaded config.
func NewClient(cfg *config.Config) *api.Client {
	base := cfg.BaseURL
	if base == "" {
		base = api.DefaultBaseURL
	}
	return api.NewClient(base, cfg.APIKey)
}

func loadClient() (*config.Config, *api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("not logged in: %w", err)
	}
	return cfg, NewClient(cfg), nil
}
