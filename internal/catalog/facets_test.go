package catalog

import (
	"testing"

	"aromateca/models"
)

func TestOilFacetsIgnoreOwnDimensionSelection(t *testing.T) {
	t.Parallel()

	oils := sampleOils()
	facets := OilFacets(oils, OilFilters{BotanicalFamilies: []string{"Rutaceae"}})

	// The botanical facet is counted with its own selection cleared, so both
	// families appear even though only Rutaceae is selected.
	counts := facets[OilFacetBotanical]
	if len(counts) != 2 {
		t.Fatalf("expected 2 botanical families, got %v", counts)
	}
	if counts[0].Value != "Lamiaceae" || counts[0].Count != 2 {
		t.Fatalf("expected Lamiaceae first with count 2, got %v", counts[0])
	}

	// Other dimensions do see the selection: only bergamota's apps remain.
	apps := facets[OilFacetApplications]
	if len(apps) != 1 || apps[0].Value != "Difusão" || apps[0].Count != 1 {
		t.Fatalf("expected only bergamota's application, got %v", apps)
	}
}

func TestRecipeFacetsCountDistinctPerItem(t *testing.T) {
	t.Parallel()

	recipes := []models.Recipe{
		{
			ID:   "r1",
			Name: "Uma",
			Tags: []string{"sono", "sono", "noite"},
		},
		{
			ID:   "r2",
			Name: "Outra",
			Tags: []string{"sono"},
		},
	}

	facets := RecipeFacets(recipes, RecipeFilters{})
	tags := facets[RecipeFacetTags]
	if len(tags) != 2 {
		t.Fatalf("expected 2 tag values, got %v", tags)
	}
	// The duplicated tag still counts once per recipe.
	if tags[0].Value != "sono" || tags[0].Count != 2 {
		t.Fatalf("expected sono counted twice, got %v", tags[0])
	}
	if tags[1].Value != "noite" || tags[1].Count != 1 {
		t.Fatalf("expected noite counted once, got %v", tags[1])
	}
}

func TestCountFacetValuesOrdersByCountThenFirstSeen(t *testing.T) {
	t.Parallel()

	items := [][]string{
		{"a", "b"},
		{"b", "c"},
		{"c"},
		{"c"},
	}
	counts := countFacetValues(items, func(v []string) []string { return v })
	want := []FacetCount{{Value: "c", Count: 3}, {Value: "b", Count: 2}, {Value: "a", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("got %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, counts[i], want[i])
		}
	}
}
