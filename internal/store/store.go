// Package store persists the catalog. Oils and recipes are stored as JSON
// documents, one row per record, with an explicit position column so the
// curated catalog order survives round trips through the database.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"aromateca/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"aromateca/models"
)

// OilRow is the persisted form of one oil.
type OilRow struct {
	ID       string     `gorm:"primaryKey"`
	Position int        `gorm:"index"`
	Document models.Oil `gorm:"serializer:json"`
}

// RecipeRow is the persisted form of one recipe.
type RecipeRow struct {
	ID       string        `gorm:"primaryKey"`
	Position int           `gorm:"index"`
	Document models.Recipe `gorm:"serializer:json"`
}

// Kind names a catalog collection in change notifications.
type Kind string

const (
	KindOils    Kind = "oils"
	KindRecipes Kind = "recipes"
)

// Store wraps the database handle and fans out change notifications to
// registered observers after every successful write.
type Store struct {
	db *gorm.DB

	observerMu sync.RWMutex
	observers  []func(Kind)
}

// Open connects to the configured database and migrates the catalog schema.
// A non-empty URL selects Postgres; otherwise the catalog lives in a local
// SQLite file.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	gormCfg := &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if strings.TrimSpace(cfg.URL) != "" {
		db, err = gorm.Open(postgres.Open(cfg.URL), gormCfg)
	} else {
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return nil, fmt.Errorf("sqlite path must not be empty")
		}
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&OilRow{}, &RecipeRow{}); err != nil {
		return nil, fmt.Errorf("migrate catalog schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenGorm wraps an already-open gorm handle. Tests use it with in-memory
// SQLite databases.
func OpenGorm(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}
	if err := db.AutoMigrate(&OilRow{}, &RecipeRow{}); err != nil {
		return nil, fmt.Errorf("migrate catalog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OnChange registers an observer invoked after every successful write to the
// named collection. Observers run synchronously on the writing goroutine and
// must not write back into the store.
func (s *Store) OnChange(fn func(Kind)) {
	if fn == nil {
		return
	}
	s.observerMu.Lock()
	defer s.observerMu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Store) notify(kind Kind) {
	s.observerMu.RLock()
	observers := make([]func(Kind), len(s.observers))
	copy(observers, s.observers)
	s.observerMu.RUnlock()
	for _, fn := range observers {
		fn(kind)
	}
}
