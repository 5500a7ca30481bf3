package catalog

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"aromateca/internal/textnorm"
	"aromateca/models"
)

// Sort keys accepted by the recipe filter engine.
const (
	RecipeSortRelevance   = "relevance"
	RecipeSortName        = "name"
	RecipeSortApplication = "application"
	RecipeSortDifficulty  = "difficulty"
	RecipeSortPrepTime    = "prep_time"
)

// Recipe safety flags. The first two require the safety text to mention the
// condition, the "no" pair requires it not to, and the leave-on flag excludes
// phototoxicity warnings on leave-on applications.
const (
	SafetyFlagEpilepsy       = "evitar_epilepsia"
	SafetyCautionAsthma      = "cautela_asma"
	SafetyNoPregnancyMention = "no_gravidez"
	SafetyNoPediatricMention = "no_pediatrico"
	SafetyNoPhotoLeaveOn     = "evitar_fototoxico_leaveon"
)

// Prep-time bands over the maximum "<n> min" occurrence in the free-text
// prep-time field.
const (
	PrepBandLTE5   = "lte5"
	PrepBand6To10  = "btw6_10"
	PrepBandOver10 = "gt10"
)

// Dilution bands. Percent values in the open interval (1, 2) outside the
// 2±0.01 window have no band and fail every dilution filter; that gap is
// long-standing observed behavior and is kept as is.
const (
	DilutionBandNone = "no_pct"
	DilutionBandLTE1 = "lte1"
	DilutionBandEQ2  = "eq2"
	DilutionBandGT2  = "gt2"
)

// Metadata flags.
const (
	MetaHasContraindications = "has_contra"
	MetaHasReferences        = "has_refs"
)

// RecipeFilters is the full filter state for the recipe catalog.
type RecipeFilters struct {
	Query        string
	Intents      []string
	Applications []string
	Difficulties []string
	Ingredients  []string
	Tags         []string
	Safety       []string
	PrepBands    []string
	Dilutions    []string
	Meta         []string
	Sort         string
}

// Active reports whether any filter dimension or query is set.
func (f RecipeFilters) Active() bool {
	return f.Query != "" ||
		len(f.Intents) > 0 || len(f.Applications) > 0 || len(f.Difficulties) > 0 ||
		len(f.Ingredients) > 0 || len(f.Tags) > 0 || len(f.Safety) > 0 ||
		len(f.PrepBands) > 0 || len(f.Dilutions) > 0 || len(f.Meta) > 0
}

func (f RecipeFilters) hasSafety(value string) bool { return containsString(f.Safety, value) }
func (f RecipeFilters) hasMeta(value string) bool   { return containsString(f.Meta, value) }

// RecipeResult mirrors OilResult for the recipe catalog. A name match on the
// active query scores 1; relevance ordering puts scored recipes first.
type RecipeResult struct {
	Rows   []models.Recipe
	Scores map[string]int
}

// ApplyRecipeFilters evaluates the recipe filter chain, short-circuiting on
// the first failing predicate, and returns the sorted survivors.
func ApplyRecipeFilters(recipes []models.Recipe, f RecipeFilters) RecipeResult {
	scores := make(map[string]int)
	query := textnorm.Normalize(f.Query)

	rows := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if query != "" && !strings.Contains(recipeSearchBlob(r), query) {
			continue
		}

		if len(f.Intents) > 0 {
			blob := textnorm.Join(append(append([]string{}, r.Purpose...), r.Tags...)...)
			if !matchesIntent(blob, f.Intents, recipeIntentTerms) {
				continue
			}
		}

		if len(f.Applications) > 0 && !containsString(f.Applications, r.Application) {
			continue
		}
		if len(f.Difficulties) > 0 && !containsString(f.Difficulties, r.Difficulty) {
			continue
		}

		if len(f.Ingredients) > 0 && !matchesIngredients(r.Ingredients, f.Ingredients) {
			continue
		}

		if len(f.Tags) > 0 && !anyInSet(r.Tags, f.Tags) {
			continue
		}

		if len(f.Safety) > 0 && !passesSafetyFlags(r, f) {
			continue
		}

		if len(f.PrepBands) > 0 {
			band, ok := PrepBand(r.PrepTime)
			if !ok || !containsString(f.PrepBands, band) {
				continue
			}
		}

		if len(f.Dilutions) > 0 {
			band, ok := DilutionBand(recipePercent(r))
			if !ok || !containsString(f.Dilutions, band) {
				continue
			}
		}

		if f.hasMeta(MetaHasContraindications) && len(r.Contraindications) == 0 {
			continue
		}
		if f.hasMeta(MetaHasReferences) && len(r.References) == 0 {
			continue
		}

		if query != "" && strings.Contains(textnorm.Normalize(r.Name), query) {
			scores[r.ID.String()] = 1
		}
		rows = append(rows, r)
	}

	sortRecipes(rows, f.Sort, query, scores)
	return RecipeResult{Rows: rows, Scores: scores}
}

func recipeSearchBlob(r models.Recipe) string {
	parts := make([]string, 0, 8)
	parts = append(parts, r.Name, r.Application, r.Difficulty)
	parts = append(parts, r.Purpose...)
	parts = append(parts, r.Tags...)
	for _, ing := range r.Ingredients {
		parts = append(parts, ing.Names()...)
	}
	parts = append(parts, r.Steps...)
	parts = append(parts, r.SafetyNotes...)
	parts = append(parts, r.Contraindications...)
	return textnorm.Join(parts...)
}

// matchesIngredients passes when any ingredient name (Portuguese or latin)
// fold-equals any selected value.
func matchesIngredients(ingredients []models.Ingredient, selected []string) bool {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[textnorm.Normalize(s)] = struct{}{}
	}
	for _, ing := range ingredients {
		for _, name := range ing.Names() {
			if _, ok := set[textnorm.Normalize(name)]; ok {
				return true
			}
		}
	}
	return false
}

// anyInSet is the exact-membership variant used for tags: at least one of
// the item's values must equal a selected value verbatim.
func anyInSet(values []string, selected []string) bool {
	for _, v := range values {
		if containsString(selected, v) {
			return true
		}
	}
	return false
}

// safetyMentions folds safety notes and contraindications into the text the
// safety flags mine.
func safetyMentions(r models.Recipe) string {
	parts := make([]string, 0, len(r.SafetyNotes)+len(r.Contraindications))
	parts = append(parts, r.SafetyNotes...)
	parts = append(parts, r.Contraindications...)
	return textnorm.Join(parts...)
}

var pediatricStems = []string{"crian", "beb", "pediatr"}
var phototoxicStems = []string{"foto", "fotossens"}
var leaveOnStems = []string{"roll", "serum", "leave-on", "leaveon", "topico"}

func passesSafetyFlags(r models.Recipe, f RecipeFilters) bool {
	mentions := safetyMentions(r)

	if f.hasSafety(SafetyFlagEpilepsy) && !strings.Contains(mentions, "epileps") {
		return false
	}
	if f.hasSafety(SafetyCautionAsthma) && !strings.Contains(mentions, "asma") {
		return false
	}
	if f.hasSafety(SafetyNoPregnancyMention) && strings.Contains(mentions, "gravid") {
		return false
	}
	if f.hasSafety(SafetyNoPediatricMention) && containsAnyStem(mentions, pediatricStems) {
		return false
	}
	if f.hasSafety(SafetyNoPhotoLeaveOn) {
		leaveOn := containsAnyStem(textnorm.Normalize(r.Application), leaveOnStems)
		photo := containsAnyStem(mentions, phototoxicStems)
		if leaveOn && photo {
			return false
		}
	}
	return true
}

func containsAnyStem(blob string, stems []string) bool {
	for _, stem := range stems {
		if strings.Contains(blob, stem) {
			return true
		}
	}
	return false
}

var minutesPattern = regexp.MustCompile(`(?i)(\d+)\s*min`)

// ParseMinutes extracts the maximum "<n> min" occurrence from a free-text
// prep-time field. The second return is false when nothing parses.
func ParseMinutes(prepTime string) (int, bool) {
	matches := minutesPattern.FindAllStringSubmatch(prepTime, -1)
	if len(matches) == 0 {
		return 0, false
	}
	max := 0
	found := false
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !found || n > max {
			max = n
			found = true
		}
	}
	return max, found
}

// PrepBand bands the parsed prep time. Unparsable prep times have no band.
func PrepBand(prepTime string) (string, bool) {
	minutes, ok := ParseMinutes(prepTime)
	if !ok {
		return "", false
	}
	switch {
	case minutes <= 5:
		return PrepBandLTE5, true
	case minutes <= 10:
		return PrepBand6To10, true
	default:
		return PrepBandOver10, true
	}
}

// DilutionBand bands a recipe dilution percent. A nil percent is its own
// band; values in (1, 2) outside the 2±0.01 window band to nothing.
func DilutionBand(percent *float64) (string, bool) {
	if percent == nil {
		return DilutionBandNone, true
	}
	pct := *percent
	switch {
	case pct <= 1:
		return DilutionBandLTE1, true
	case math.Abs(pct-2) < 0.01:
		return DilutionBandEQ2, true
	case pct > 2:
		return DilutionBandGT2, true
	default:
		return "", false
	}
}

func recipePercent(r models.Recipe) *float64 {
	if r.Dilution == nil {
		return nil
	}
	return r.Dilution.Percent
}

// Recipes with no parsable prep time sort after everything else.
const prepTimeSentinel = math.MaxInt32

func sortRecipes(rows []models.Recipe, key, query string, scores map[string]int) {
	coll := newCollator()
	byName := func(i, j int) bool {
		return coll.CompareString(rows[i].Name, rows[j].Name) < 0
	}
	switch key {
	case RecipeSortName:
		sort.SliceStable(rows, byName)
	case RecipeSortApplication:
		sort.SliceStable(rows, func(i, j int) bool {
			return coll.CompareString(rows[i].Application, rows[j].Application) < 0
		})
	case RecipeSortDifficulty:
		sort.SliceStable(rows, func(i, j int) bool {
			return coll.CompareString(rows[i].Difficulty, rows[j].Difficulty) < 0
		})
	case RecipeSortPrepTime:
		sort.SliceStable(rows, func(i, j int) bool {
			pi, pj := prepMinutesOrSentinel(rows[i]), prepMinutesOrSentinel(rows[j])
			if pi != pj {
				return pi < pj
			}
			return byName(i, j)
		})
	default:
		if query == "" {
			sort.SliceStable(rows, byName)
			return
		}
		sort.SliceStable(rows, func(i, j int) bool {
			si, sj := scores[rows[i].ID.String()], scores[rows[j].ID.String()]
			if si != sj {
				return si > sj
			}
			return byName(i, j)
		})
	}
}

func prepMinutesOrSentinel(r models.Recipe) int {
	if minutes, ok := ParseMinutes(r.PrepTime); ok {
		return minutes
	}
	return prepTimeSentinel
}
