package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"aromateca/models"
)

var testDBCounter atomic.Int64

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:store-test-%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	st, err := OpenGorm(db)
	if err != nil {
		t.Fatalf("wrap store: %v", err)
	}
	return st
}

func TestOpenGormRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if _, err := OpenGorm(nil); err == nil {
		t.Fatal("expected error for nil database handle")
	}
}

func TestReplaceOilsPreservesOrder(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	oils := []models.Oil{
		{ID: "c", NamePT: "Copaíba"},
		{ID: "a", NamePT: "Alecrim"},
		{ID: "b", NamePT: "Bergamota"},
	}
	if err := st.ReplaceOils(ctx, oils); err != nil {
		t.Fatalf("replace oils: %v", err)
	}

	loaded, err := st.Oils(ctx)
	if err != nil {
		t.Fatalf("load oils: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("expected 3 oils, got %d", len(loaded))
	}
	for i, want := range []string{"c", "a", "b"} {
		if loaded[i].ID != want {
			t.Fatalf("position %d: got %s, want %s", i, loaded[i].ID, want)
		}
	}
}

func TestUpsertOilKeepsPositionOnUpdate(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	seed := []models.Oil{{ID: "a", NamePT: "Alecrim"}, {ID: "b", NamePT: "Bergamota"}}
	if err := st.ReplaceOils(ctx, seed); err != nil {
		t.Fatalf("replace oils: %v", err)
	}

	if err := st.UpsertOil(ctx, models.Oil{ID: "a", NamePT: "Alecrim atualizado"}); err != nil {
		t.Fatalf("upsert existing oil: %v", err)
	}
	if err := st.UpsertOil(ctx, models.Oil{ID: "c", NamePT: "Copaíba"}); err != nil {
		t.Fatalf("upsert new oil: %v", err)
	}

	loaded, err := st.Oils(ctx)
	if err != nil {
		t.Fatalf("load oils: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if loaded[i].ID != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, loaded[i].ID, want[i])
		}
	}
	if loaded[0].NamePT != "Alecrim atualizado" {
		t.Fatalf("expected updated document, got %s", loaded[0].NamePT)
	}
}

func TestDeleteOilReportsMissing(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	if err := st.DeleteOil(ctx, "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := st.UpsertOil(ctx, models.Oil{ID: "a", NamePT: "Alecrim"}); err != nil {
		t.Fatalf("upsert oil: %v", err)
	}
	if err := st.DeleteOil(ctx, "a"); err != nil {
		t.Fatalf("delete oil: %v", err)
	}
	if _, err := st.Oil(ctx, "a"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRecipeDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	drops := 3
	recipe := models.Recipe{
		ID:   "roll-on",
		Name: "Roll-on para dormir",
		Ingredients: []models.Ingredient{
			{Kind: models.IngredientEssentialOil, NamePT: "Lavanda", Latin: "Lavandula angustifolia", Drops: &drops},
		},
		Tags: []string{"sono"},
	}
	if err := st.UpsertRecipe(ctx, recipe); err != nil {
		t.Fatalf("upsert recipe: %v", err)
	}

	loaded, err := st.Recipe(ctx, "roll-on")
	if err != nil {
		t.Fatalf("load recipe: %v", err)
	}
	if loaded.Name != recipe.Name {
		t.Fatalf("name = %s, want %s", loaded.Name, recipe.Name)
	}
	if len(loaded.Ingredients) != 1 || loaded.Ingredients[0].Latin != "Lavandula angustifolia" {
		t.Fatalf("ingredient did not survive the round trip: %v", loaded.Ingredients)
	}
	if loaded.Ingredients[0].Drops == nil || *loaded.Ingredients[0].Drops != 3 {
		t.Fatalf("drop count did not survive the round trip: %v", loaded.Ingredients[0].Drops)
	}
}

func TestOnChangeObserversFire(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	var kinds []Kind
	st.OnChange(func(kind Kind) { kinds = append(kinds, kind) })

	if err := st.UpsertOil(ctx, models.Oil{ID: "a", NamePT: "Alecrim"}); err != nil {
		t.Fatalf("upsert oil: %v", err)
	}
	if err := st.ReplaceRecipes(ctx, []models.Recipe{{ID: "r", Name: "Receita"}}); err != nil {
		t.Fatalf("replace recipes: %v", err)
	}

	if len(kinds) != 2 || kinds[0] != KindOils || kinds[1] != KindRecipes {
		t.Fatalf("unexpected notifications: %v", kinds)
	}
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	dir := t.TempDir()
	writeSeedFile(t, dir, OilsFile, `[{"id":"lavanda","nome_pt":"Lavanda"}]`)
	writeSeedFile(t, dir, RecipesFile, `[{"id":"r1","name":"Roll-on"}]`)

	if err := st.SeedIfEmpty(ctx, dir); err != nil {
		t.Fatalf("seed: %v", err)
	}
	oils, recipes, err := st.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if oils != 1 || recipes != 1 {
		t.Fatalf("counts = %d oils %d recipes, want 1/1", oils, recipes)
	}

	// A second run against non-empty collections must not reload.
	writeSeedFile(t, dir, OilsFile, `[{"id":"lavanda","nome_pt":"Lavanda"},{"id":"alecrim","nome_pt":"Alecrim"}]`)
	if err := st.SeedIfEmpty(ctx, dir); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	oils, _, err = st.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if oils != 1 {
		t.Fatalf("expected seed to skip the non-empty collection, got %d oils", oils)
	}
}

func TestSeedIfEmptySkipsMissingFiles(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	if err := st.SeedIfEmpty(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("expected missing seed files to be skipped, got %v", err)
	}
}

func writeSeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
}
