package catalog

import (
	"sort"

	"aromateca/models"
)

// FacetCount pairs a facet value with the number of items that would remain
// if that value's dimension were the only one left unselected.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facet dimension keys. They double as the query-string parameter names.
const (
	OilFacetApplications = "apps"
	OilFacetProductType  = "tipo"
	OilFacetBotanical    = "famBot"
	OilFacetOlfactory    = "famOlf"
	OilFacetPartUsed     = "parte"
	OilFacetMethod       = "metodo"
	OilFacetVehicles     = "veiculos"
	OilFacetRegion       = "regiao"
	OilFacetConstituents = "constituintes"

	RecipeFacetApplication = "application"
	RecipeFacetDifficulty  = "difficulty"
	RecipeFacetTags        = "tags"
	RecipeFacetIngredients = "ingredients"
)

// OilFacets computes the per-value counts for every oil facet dimension.
// Each dimension is counted over the result of applying all filters except
// that dimension's own selection, so the counts reflect cross-filter
// interaction but never a dimension's own current selection.
func OilFacets(oils []models.Oil, f OilFilters) map[string][]FacetCount {
	dims := []struct {
		key     string
		clear   func(*OilFilters)
		project func(models.Oil) []string
	}{
		{OilFacetApplications, func(c *OilFilters) { c.Applications = nil }, func(o models.Oil) []string { return o.SuggestedApps }},
		{OilFacetProductType, func(c *OilFilters) { c.ProductTypes = nil }, func(o models.Oil) []string { return single(o.ProductType) }},
		{OilFacetBotanical, func(c *OilFilters) { c.BotanicalFamilies = nil }, func(o models.Oil) []string { return single(o.BotanicalFamily) }},
		{OilFacetOlfactory, func(c *OilFilters) { c.OlfactoryFamilies = nil }, func(o models.Oil) []string { return single(o.OlfactoryFamilyDisplay()) }},
		{OilFacetPartUsed, func(c *OilFilters) { c.PartsUsed = nil }, func(o models.Oil) []string { return single(o.PartUsed) }},
		{OilFacetMethod, func(c *OilFilters) { c.ExtractionMethods = nil }, func(o models.Oil) []string { return single(o.ExtractionMethodDisplay()) }},
		{OilFacetVehicles, func(c *OilFilters) { c.Vehicles = nil }, func(o models.Oil) []string { return o.RecommendedVehicles }},
		{OilFacetRegion, func(c *OilFilters) { c.Regions = nil }, func(o models.Oil) []string { return single(o.OriginRegion) }},
		{OilFacetConstituents, func(c *OilFilters) { c.Constituents = nil }, func(o models.Oil) []string { return o.ConstituentNames() }},
	}

	out := make(map[string][]FacetCount, len(dims))
	for _, dim := range dims {
		cleared := f
		dim.clear(&cleared)
		subset := ApplyOilFilters(oils, cleared).Rows
		out[dim.key] = countFacetValues(subset, dim.project)
	}
	return out
}

// RecipeFacets mirrors OilFacets for the recipe catalog.
func RecipeFacets(recipes []models.Recipe, f RecipeFilters) map[string][]FacetCount {
	dims := []struct {
		key     string
		clear   func(*RecipeFilters)
		project func(models.Recipe) []string
	}{
		{RecipeFacetApplication, func(c *RecipeFilters) { c.Applications = nil }, func(r models.Recipe) []string { return single(r.Application) }},
		{RecipeFacetDifficulty, func(c *RecipeFilters) { c.Difficulties = nil }, func(r models.Recipe) []string { return single(r.Difficulty) }},
		{RecipeFacetTags, func(c *RecipeFilters) { c.Tags = nil }, func(r models.Recipe) []string { return r.Tags }},
		{RecipeFacetIngredients, func(c *RecipeFilters) { c.Ingredients = nil }, ingredientFacetValues},
	}

	out := make(map[string][]FacetCount, len(dims))
	for _, dim := range dims {
		cleared := f
		dim.clear(&cleared)
		subset := ApplyRecipeFilters(recipes, cleared).Rows
		out[dim.key] = countFacetValues(subset, dim.project)
	}
	return out
}

func ingredientFacetValues(r models.Recipe) []string {
	values := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		values = append(values, ing.Names()...)
	}
	return values
}

// countFacetValues counts distinct values per item (an item holding a value
// twice still counts once) and orders by count descending, first-seen order
// on ties.
func countFacetValues[T any](items []T, project func(T) []string) []FacetCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, item := range items {
		seen := make(map[string]struct{})
		for _, value := range project(item) {
			if value == "" {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			if _, known := counts[value]; !known {
				order = append(order, value)
			}
			counts[value]++
		}
	}

	out := make([]FacetCount, 0, len(order))
	for _, value := range order {
		out = append(out, FacetCount{Value: value, Count: counts[value]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func single(value string) []string {
	if value == "" {
		return nil
	}
	return []string{value}
}
