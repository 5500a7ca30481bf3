package main

import (
	"fmt"

	"aromateca/internal/config"
	"aromateca/internal/store"
)

func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("open store: %w", err)
	}
	return st, cfg, nil
}
