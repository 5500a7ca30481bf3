// Package importer decodes and validates catalog documents before they are
// merged into the store. Entries are decoded one by one so a single broken
// record reports its index instead of failing the whole batch.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"aromateca/models"
)

// EntryError describes a problem with one entry of an imported document.
type EntryError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (e EntryError) Error() string {
	return fmt.Sprintf("entrada %d: %s", e.Index, e.Message)
}

// ErrDuplicateID marks a document carrying the same id twice. Duplicate ids
// make merge results order-dependent, so the import is rejected outright
// rather than resolved silently.
var ErrDuplicateID = errors.New("documento contém ids duplicados")

// Oils decodes a catalog document into oils. The document may be a bare
// array or an object wrapping the array under "items", "oils" or "oleos".
// Entries that fail to decode or validate are reported with their index;
// valid entries still import. A duplicate id aborts the whole document.
func Oils(raw []byte) ([]models.Oil, []EntryError, error) {
	elements, err := documentElements(raw, "items", "oils", "oleos")
	if err != nil {
		return nil, nil, err
	}

	oils := make([]models.Oil, 0, len(elements))
	var entryErrs []EntryError
	for i, element := range elements {
		var oil models.Oil
		if err := json.Unmarshal(element, &oil); err != nil {
			entryErrs = append(entryErrs, EntryError{Index: i, Message: "JSON inválido: " + err.Error()})
			continue
		}
		if msg := validateOil(oil); msg != "" {
			entryErrs = append(entryErrs, EntryError{Index: i, Message: msg})
			continue
		}
		oils = append(oils, oil)
	}

	if dup := firstDuplicate(oils, func(o models.Oil) string { return o.ID }); dup != "" {
		return nil, entryErrs, fmt.Errorf("%w: %s", ErrDuplicateID, dup)
	}
	return oils, entryErrs, nil
}

// Recipes decodes a catalog document into recipes. Wrapper keys "items",
// "recipes" and "receitas" are accepted.
func Recipes(raw []byte) ([]models.Recipe, []EntryError, error) {
	elements, err := documentElements(raw, "items", "recipes", "receitas")
	if err != nil {
		return nil, nil, err
	}

	recipes := make([]models.Recipe, 0, len(elements))
	var entryErrs []EntryError
	for i, element := range elements {
		var recipe models.Recipe
		if err := json.Unmarshal(element, &recipe); err != nil {
			entryErrs = append(entryErrs, EntryError{Index: i, Message: "JSON inválido: " + err.Error()})
			continue
		}
		if msg := validateRecipe(recipe); msg != "" {
			entryErrs = append(entryErrs, EntryError{Index: i, Message: msg})
			continue
		}
		recipes = append(recipes, recipe)
	}

	if dup := firstDuplicate(recipes, func(r models.Recipe) string { return r.ID.String() }); dup != "" {
		return nil, entryErrs, fmt.Errorf("%w: %s", ErrDuplicateID, dup)
	}
	return recipes, entryErrs, nil
}

// documentElements splits a document into raw entries. The wrapper keys are
// tried in order; the first present and non-null one wins.
func documentElements(raw []byte, wrapperKeys ...string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, errors.New("documento vazio")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err == nil {
		return elements, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, errors.New("documento deve ser um array JSON ou um objeto com a lista de itens")
	}
	for _, key := range wrapperKeys {
		inner, ok := wrapper[key]
		if !ok || string(inner) == "null" {
			continue
		}
		if err := json.Unmarshal(inner, &elements); err != nil {
			return nil, fmt.Errorf("campo %q deve ser um array JSON", key)
		}
		return elements, nil
	}
	return nil, fmt.Errorf("nenhuma lista encontrada (chaves aceitas: %s)", strings.Join(wrapperKeys, ", "))
}

func validateOil(oil models.Oil) string {
	if strings.TrimSpace(oil.ID) == "" {
		return "campo \"id\" é obrigatório"
	}
	if strings.TrimSpace(oil.NamePT) == "" {
		return "campo \"nome_pt\" é obrigatório"
	}
	for _, c := range oil.MainConstituents {
		if c.Percent != nil && (*c.Percent < 0 || *c.Percent > 100) {
			return fmt.Sprintf("constituinte %q com percentual fora do intervalo 0-100", c.Name)
		}
	}
	if oil.Restricted != nil && oil.Restricted.MinChildAge != nil && *oil.Restricted.MinChildAge < 0 {
		return "campo \"criancas_min_idade\" não pode ser negativo"
	}
	return ""
}

func validateRecipe(recipe models.Recipe) string {
	if strings.TrimSpace(recipe.ID.String()) == "" {
		return "campo \"id\" é obrigatório"
	}
	if strings.TrimSpace(recipe.Name) == "" {
		return "campo \"name\" é obrigatório"
	}
	if recipe.Dilution != nil && recipe.Dilution.Percent != nil {
		if p := *recipe.Dilution.Percent; p < 0 || p > 100 {
			return "diluição com percentual fora do intervalo 0-100"
		}
	}
	for i, ing := range recipe.Ingredients {
		if ing.Drops != nil && *ing.Drops < 0 {
			return fmt.Sprintf("ingrediente %d com número de gotas negativo", i)
		}
		if ing.AmountML != nil && *ing.AmountML < 0 {
			return fmt.Sprintf("ingrediente %d com volume negativo", i)
		}
	}
	return ""
}

func firstDuplicate[T any](items []T, keyOf func(T) string) string {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := keyOf(item)
		if _, dup := seen[key]; dup {
			return key
		}
		seen[key] = struct{}{}
	}
	return ""
}
