package catalog

import (
	"net/url"
	"strings"
)

// Filter state is shared between clients as a flat query string: array
// dimensions repeat their key, scalar keys appear once. Values then
// FromValues must reproduce the state exactly.

const (
	paramQuery = "q"
	paramSort  = "sort"
)

// Values serializes the oil filter state. Empty dimensions are omitted; the
// sort key is always present so a shared link pins its ordering.
func (f OilFilters) Values() url.Values {
	v := url.Values{}
	setScalar(v, paramQuery, f.Query)
	setList(v, "intents", f.Intents)
	setList(v, OilFacetApplications, f.Applications)
	setList(v, "safe", f.Safety)
	setList(v, "publics", f.Publics)
	setList(v, OilFacetConstituents, f.Constituents)
	setList(v, OilFacetProductType, f.ProductTypes)
	setList(v, OilFacetBotanical, f.BotanicalFamilies)
	setList(v, OilFacetOlfactory, f.OlfactoryFamilies)
	setList(v, OilFacetPartUsed, f.PartsUsed)
	setList(v, OilFacetMethod, f.ExtractionMethods)
	setList(v, OilFacetVehicles, f.Vehicles)
	setList(v, OilFacetRegion, f.Regions)
	setScalar(v, paramSort, f.Sort)
	return v
}

// OilFiltersFromValues deserializes an oil filter state. Unrecognized sort
// keys fall back to relevance; query strings are user-editable and garbage
// must degrade, not fail.
func OilFiltersFromValues(v url.Values) OilFilters {
	return OilFilters{
		Query:             strings.TrimSpace(v.Get(paramQuery)),
		Intents:           list(v, "intents"),
		Applications:      list(v, OilFacetApplications),
		Safety:            list(v, "safe"),
		Publics:           list(v, "publics"),
		Constituents:      list(v, OilFacetConstituents),
		ProductTypes:      list(v, OilFacetProductType),
		BotanicalFamilies: list(v, OilFacetBotanical),
		OlfactoryFamilies: list(v, OilFacetOlfactory),
		PartsUsed:         list(v, OilFacetPartUsed),
		ExtractionMethods: list(v, OilFacetMethod),
		Vehicles:          list(v, OilFacetVehicles),
		Regions:           list(v, OilFacetRegion),
		Sort:              oilSortKey(v.Get(paramSort)),
	}
}

func oilSortKey(raw string) string {
	switch raw {
	case OilSortName, OilSortCategory, OilSortFamily, OilSortRelevance:
		return raw
	default:
		return OilSortRelevance
	}
}

// Values serializes the recipe filter state.
func (f RecipeFilters) Values() url.Values {
	v := url.Values{}
	setScalar(v, paramQuery, f.Query)
	setList(v, "intents", f.Intents)
	setList(v, RecipeFacetApplication, f.Applications)
	setList(v, RecipeFacetDifficulty, f.Difficulties)
	setList(v, RecipeFacetIngredients, f.Ingredients)
	setList(v, RecipeFacetTags, f.Tags)
	setList(v, "safety", f.Safety)
	setList(v, "prepRange", f.PrepBands)
	setList(v, "dilution", f.Dilutions)
	setList(v, "meta", f.Meta)
	setScalar(v, paramSort, f.Sort)
	return v
}

// RecipeFiltersFromValues deserializes a recipe filter state.
func RecipeFiltersFromValues(v url.Values) RecipeFilters {
	return RecipeFilters{
		Query:        strings.TrimSpace(v.Get(paramQuery)),
		Intents:      list(v, "intents"),
		Applications: list(v, RecipeFacetApplication),
		Difficulties: list(v, RecipeFacetDifficulty),
		Ingredients:  list(v, RecipeFacetIngredients),
		Tags:         list(v, RecipeFacetTags),
		Safety:       list(v, "safety"),
		PrepBands:    list(v, "prepRange"),
		Dilutions:    list(v, "dilution"),
		Meta:         list(v, "meta"),
		Sort:         recipeSortKey(v.Get(paramSort)),
	}
}

func recipeSortKey(raw string) string {
	switch raw {
	case RecipeSortName, RecipeSortApplication, RecipeSortDifficulty, RecipeSortPrepTime, RecipeSortRelevance:
		return raw
	default:
		return RecipeSortRelevance
	}
}

func setScalar(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setList(v url.Values, key string, values []string) {
	for _, value := range values {
		if value != "" {
			v.Add(key, value)
		}
	}
}

func list(v url.Values, key string) []string {
	raw, ok := v[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, value := range raw {
		if value != "" {
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
