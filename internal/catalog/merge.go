package catalog

import "aromateca/models"

// MergeResult summarizes a merge of an imported collection into an existing
// one: the reconciled collection plus the counts shown to the operator
// before committing an import.
type MergeResult[T any] struct {
	Merged  []T
	Added   int
	Updated int
	Kept    int
}

// Merge reconciles incoming items into base by identity key. An incoming
// item whose key already exists replaces the stored record wholesale and
// keeps its original position; unseen keys append in incoming order. Kept is
// the number of base items the import left untouched.
func Merge[T any, K comparable](base, incoming []T, keyOf func(T) K) MergeResult[T] {
	merged := make([]T, len(base), len(base)+len(incoming))
	copy(merged, base)

	position := make(map[K]int, len(base))
	for i, item := range base {
		position[keyOf(item)] = i
	}

	result := MergeResult[T]{}
	for _, item := range incoming {
		key := keyOf(item)
		if at, exists := position[key]; exists {
			merged[at] = item
			result.Updated++
			continue
		}
		position[key] = len(merged)
		merged = append(merged, item)
		result.Added++
	}

	result.Kept = len(base) - result.Updated
	result.Merged = merged
	return result
}

// MergeOils merges oils by id.
func MergeOils(base, incoming []models.Oil) MergeResult[models.Oil] {
	return Merge(base, incoming, func(o models.Oil) string { return o.ID })
}

// MergeRecipes merges recipes by id. RecipeID already folds numeric ids into
// string form, so string/number id pairs reconcile correctly.
func MergeRecipes(base, incoming []models.Recipe) MergeResult[models.Recipe] {
	return Merge(base, incoming, func(r models.Recipe) string { return r.ID.String() })
}
