package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aromateca/models"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("registro não encontrado")

// Oils returns every oil in catalog order.
func (s *Store) Oils(ctx context.Context) ([]models.Oil, error) {
	var rows []OilRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load oils: %w", err)
	}
	oils := make([]models.Oil, 0, len(rows))
	for _, row := range rows {
		oils = append(oils, row.Document)
	}
	return oils, nil
}

// Oil returns one oil by id.
func (s *Store) Oil(ctx context.Context, id string) (models.Oil, error) {
	var row OilRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Oil{}, ErrNotFound
	}
	if err != nil {
		return models.Oil{}, fmt.Errorf("load oil %s: %w", id, err)
	}
	return row.Document, nil
}

// ReplaceOils swaps the whole oil collection, renumbering positions to the
// slice order.
func (s *Store) ReplaceOils(ctx context.Context, oils []models.Oil) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&OilRow{}).Error; err != nil {
			return err
		}
		return insertOilRows(tx, oils)
	})
	if err != nil {
		return fmt.Errorf("replace oils: %w", err)
	}
	s.notify(KindOils)
	return nil
}

// UpsertOil inserts or updates one oil. An existing record keeps its
// position; a new one appends at the end of the catalog.
func (s *Store) UpsertOil(ctx context.Context, oil models.Oil) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := nextPosition(tx, &OilRow{}, oil.ID)
		if err != nil {
			return err
		}
		row := OilRow{ID: oil.ID, Position: position, Document: oil}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("upsert oil %s: %w", oil.ID, err)
	}
	s.notify(KindOils)
	return nil
}

// DeleteOil removes one oil by id.
func (s *Store) DeleteOil(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&OilRow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete oil %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.notify(KindOils)
	return nil
}

// Recipes returns every recipe in catalog order.
func (s *Store) Recipes(ctx context.Context) ([]models.Recipe, error) {
	var rows []RecipeRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	recipes := make([]models.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, row.Document)
	}
	return recipes, nil
}

// Recipe returns one recipe by id.
func (s *Store) Recipe(ctx context.Context, id string) (models.Recipe, error) {
	var row RecipeRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Recipe{}, ErrNotFound
	}
	if err != nil {
		return models.Recipe{}, fmt.Errorf("load recipe %s: %w", id, err)
	}
	return row.Document, nil
}

// ReplaceRecipes swaps the whole recipe collection.
func (s *Store) ReplaceRecipes(ctx context.Context, recipes []models.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&RecipeRow{}).Error; err != nil {
			return err
		}
		return insertRecipeRows(tx, recipes)
	})
	if err != nil {
		return fmt.Errorf("replace recipes: %w", err)
	}
	s.notify(KindRecipes)
	return nil
}

// UpsertRecipe inserts or updates one recipe.
func (s *Store) UpsertRecipe(ctx context.Context, recipe models.Recipe) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		position, err := nextPosition(tx, &RecipeRow{}, recipe.ID.String())
		if err != nil {
			return err
		}
		row := RecipeRow{ID: recipe.ID.String(), Position: position, Document: recipe}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("upsert recipe %s: %w", recipe.ID, err)
	}
	s.notify(KindRecipes)
	return nil
}

// DeleteRecipe removes one recipe by id.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&RecipeRow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete recipe %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.notify(KindRecipes)
	return nil
}

// Counts reports the collection sizes.
func (s *Store) Counts(ctx context.Context) (oils int64, recipes int64, err error) {
	if err = s.db.WithContext(ctx).Model(&OilRow{}).Count(&oils).Error; err != nil {
		return 0, 0, fmt.Errorf("count oils: %w", err)
	}
	if err = s.db.WithContext(ctx).Model(&RecipeRow{}).Count(&recipes).Error; err != nil {
		return 0, 0, fmt.Errorf("count recipes: %w", err)
	}
	return oils, recipes, nil
}

func insertOilRows(tx *gorm.DB, oils []models.Oil) error {
	for i, oil := range oils {
		row := OilRow{ID: oil.ID, Position: i, Document: oil}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertRecipeRows(tx *gorm.DB, recipes []models.Recipe) error {
	for i, recipe := range recipes {
		row := RecipeRow{ID: recipe.ID.String(), Position: i, Document: recipe}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// nextPosition resolves the position for an upsert: an existing record
// keeps its slot, a new one appends after the current maximum.
func nextPosition(tx *gorm.DB, model any, id string) (int, error) {
	var existing struct{ Position int }
	err := tx.Model(model).Select("position").First(&existing, "id = ?", id).Error
	if err == nil {
		return existing.Position, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}
