package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"aromateca/internal/importer"
	"aromateca/internal/log"
)

// Catalog document file names inside the data directory.
const (
	OilsFile    = "oils_catalog.json"
	RecipesFile = "recipes_catalog.json"
)

// SeedIfEmpty loads the catalog documents from dataDir into any collection
// that is still empty. Missing files are skipped; broken entries are logged
// and the rest of the document still seeds.
func (s *Store) SeedIfEmpty(ctx context.Context, dataDir string) error {
	oilCount, recipeCount, err := s.Counts(ctx)
	if err != nil {
		return err
	}

	if oilCount == 0 {
		if err := s.seedOils(ctx, filepath.Join(dataDir, OilsFile)); err != nil {
			return err
		}
	}
	if recipeCount == 0 {
		if err := s.seedRecipes(ctx, filepath.Join(dataDir, RecipesFile)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seedOils(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(ctx, "seed file absent", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	oils, entryErrs, err := importer.Oils(raw)
	if err != nil {
		return fmt.Errorf("seed oils from %s: %w", path, err)
	}
	for _, entryErr := range entryErrs {
		log.Warn(ctx, "seed entry skipped", "path", path, "index", entryErr.Index, "reason", entryErr.Message)
	}
	if err := s.ReplaceOils(ctx, oils); err != nil {
		return err
	}
	log.Info(ctx, "seeded oils", "path", path, "count", len(oils))
	return nil
}

func (s *Store) seedRecipes(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(ctx, "seed file absent", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	recipes, entryErrs, err := importer.Recipes(raw)
	if err != nil {
		return fmt.Errorf("seed recipes from %s: %w", path, err)
	}
	for _, entryErr := range entryErrs {
		log.Warn(ctx, "seed entry skipped", "path", path, "index", entryErr.Index, "reason", entryErr.Message)
	}
	if err := s.ReplaceRecipes(ctx, recipes); err != nil {
		return err
	}
	log.Info(ctx, "seeded recipes", "path", path, "count", len(recipes))
	return nil
}
