package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"aromateca/internal/catalog"
	"aromateca/internal/importer"
	"aromateca/internal/log"
)

// Editors save files with write bursts; coalesce them before re-importing.
const watchDebounce = 300 * time.Millisecond

// Watch observes the data directory and merges catalog documents into the
// store whenever they change on disk. It blocks until ctx is cancelled.
// Changed documents merge by id, so hand edits never drop records created
// through the API.
func (s *Store) Watch(ctx context.Context, dataDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dataDir); err != nil {
		return err
	}
	log.Info(ctx, "watching data directory", "dir", dataDir)

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if name != OilsFile && name != RecipesFile {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error(ctx, "watcher error", "error", err)
		case <-fire:
			for path := range pending {
				s.importChanged(ctx, path)
			}
			pending = make(map[string]struct{})
			fire = nil
		}
	}
}

func (s *Store) importChanged(ctx context.Context, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error(ctx, "read changed document", "path", path, "error", err)
		return
	}

	switch filepath.Base(path) {
	case OilsFile:
		incoming, entryErrs, err := importer.Oils(raw)
		if err != nil {
			log.Error(ctx, "import changed oils", "path", path, "error", err)
			return
		}
		logEntryErrors(ctx, path, entryErrs)
		base, err := s.Oils(ctx)
		if err != nil {
			log.Error(ctx, "load oils for merge", "error", err)
			return
		}
		merged := catalog.MergeOils(base, incoming)
		if err := s.ReplaceOils(ctx, merged.Merged); err != nil {
			log.Error(ctx, "apply merged oils", "error", err)
			return
		}
		log.Info(ctx, "merged changed oils", "path", path,
			"added", merged.Added, "updated", merged.Updated, "kept", merged.Kept)
	case RecipesFile:
		incoming, entryErrs, err := importer.Recipes(raw)
		if err != nil {
			log.Error(ctx, "import changed recipes", "path", path, "error", err)
			return
		}
		logEntryErrors(ctx, path, entryErrs)
		base, err := s.Recipes(ctx)
		if err != nil {
			log.Error(ctx, "load recipes for merge", "error", err)
			return
		}
		merged := catalog.MergeRecipes(base, incoming)
		if err := s.ReplaceRecipes(ctx, merged.Merged); err != nil {
			log.Error(ctx, "apply merged recipes", "error", err)
			return
		}
		log.Info(ctx, "merged changed recipes", "path", path,
			"added", merged.Added, "updated", merged.Updated, "kept", merged.Kept)
	}
}

func logEntryErrors(ctx context.Context, path string, entryErrs []importer.EntryError) {
	for _, entryErr := range entryErrs {
		log.Warn(ctx, "import entry skipped", "path", path, "index", entryErr.Index, "reason", entryErr.Message)
	}
}
