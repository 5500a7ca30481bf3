package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"aromateca/internal/textnorm"
	"aromateca/models"
)

// Sort keys accepted by the oil filter engine. Anything else falls back to
// relevance, because sort keys arrive from user-editable query strings.
const (
	OilSortRelevance = "relevance"
	OilSortName      = "name"
	OilSortCategory  = "category"
	OilSortFamily    = "family"
)

// Safety toggle values. Each selected toggle hard-requires its condition;
// an unrecorded flag never passes.
const (
	SafeSensitiveSkin    = "pele"
	SafeClinicalUse      = "clinico"
	SafeNonPhototoxic    = "nao_fototoxico"
	SafeLowSensitization = "baixa_sensibilizacao"
)

// Restricted-population toggle values. The "evitar" pair surfaces oils that
// explicitly carry the warning; the others exclude oils that do.
const (
	PublicNoPregnancy   = "sem_gravidez"
	PublicNoLactation   = "sem_lactacao"
	PublicChildren3Plus = "criancas3"
	PublicFlagEpilepsy  = "evitar_epilepsia"
	PublicFlagAsthma    = "evitar_asma"
)

// OilFilters is the full filter state for the oil catalog. It is plain data:
// serializable to a query string, comparable, and the only input to the
// engine besides the collection itself.
type OilFilters struct {
	Query             string
	Intents           []string
	Applications      []string
	Safety            []string
	Publics           []string
	Constituents      []string
	ProductTypes      []string
	BotanicalFamilies []string
	OlfactoryFamilies []string
	PartsUsed         []string
	ExtractionMethods []string
	Vehicles          []string
	Regions           []string
	Sort              string
}

// Active reports whether any filter dimension or query is set.
func (f OilFilters) Active() bool {
	return f.Query != "" ||
		len(f.Intents) > 0 || len(f.Applications) > 0 || len(f.Safety) > 0 ||
		len(f.Publics) > 0 || len(f.Constituents) > 0 || len(f.ProductTypes) > 0 ||
		len(f.BotanicalFamilies) > 0 || len(f.OlfactoryFamilies) > 0 ||
		len(f.PartsUsed) > 0 || len(f.ExtractionMethods) > 0 ||
		len(f.Vehicles) > 0 || len(f.Regions) > 0
}

func (f OilFilters) hasSafety(value string) bool { return containsString(f.Safety, value) }
func (f OilFilters) hasPublic(value string) bool { return containsString(f.Publics, value) }

// OilResult is the outcome of a filter pass: the surviving rows in sorted
// order plus the relevance score accumulated for each surviving id.
type OilResult struct {
	Rows   []models.Oil
	Scores map[string]int
}

// ApplyOilFilters evaluates every filter dimension against each oil,
// short-circuiting on the first failing predicate, and returns the sorted
// survivors. Query matches score 5 and intent matches score 3; the scores
// drive the relevance ordering.
func ApplyOilFilters(oils []models.Oil, f OilFilters) OilResult {
	scores := make(map[string]int)
	query := textnorm.Normalize(f.Query)

	rows := make([]models.Oil, 0, len(oils))
	for _, oil := range oils {
		score := 0

		if query != "" {
			if !strings.Contains(oilSearchBlob(oil), query) {
				continue
			}
			score += 5
		}

		if len(f.Intents) > 0 {
			blob := textnorm.Join(oil.ExpectedEffects...)
			if !matchesIntent(blob, f.Intents, oilIntentTerms) {
				continue
			}
			score += 3
		}

		if !matchesAny(oil.SuggestedApps, f.Applications) {
			continue
		}

		if f.hasSafety(SafeSensitiveSkin) && !oil.SafeSensitiveSkin.True() {
			continue
		}
		if f.hasSafety(SafeClinicalUse) && !oil.SafeClinicalUse.True() {
			continue
		}
		if f.hasSafety(SafeNonPhototoxic) && !oil.Phototoxic.False() {
			continue
		}
		if f.hasSafety(SafeLowSensitization) && !oil.Sensitizing.False() {
			continue
		}

		if !passesPublicToggles(oil, f) {
			continue
		}

		if len(f.Constituents) > 0 && !matchesAny(oil.ConstituentNames(), f.Constituents) {
			continue
		}

		if !matchesAny([]string{oil.ProductType}, f.ProductTypes) {
			continue
		}
		if !matchesAny([]string{oil.BotanicalFamily}, f.BotanicalFamilies) {
			continue
		}
		if !matchesAny([]string{oil.OlfactoryFamilyDisplay()}, f.OlfactoryFamilies) {
			continue
		}
		if !matchesAny([]string{oil.PartUsed}, f.PartsUsed) {
			continue
		}
		if !matchesAny([]string{oil.ExtractionMethodDisplay()}, f.ExtractionMethods) {
			continue
		}
		if !matchesAny(oil.RecommendedVehicles, f.Vehicles) {
			continue
		}
		if !matchesAny([]string{oil.OriginRegion}, f.Regions) {
			continue
		}

		scores[oil.ID] = score
		rows = append(rows, oil)
	}

	sortOils(rows, f.Sort, scores)
	return OilResult{Rows: rows, Scores: scores}
}

func passesPublicToggles(oil models.Oil, f OilFilters) bool {
	r := oil.Restricted
	if f.hasPublic(PublicNoPregnancy) && r != nil && r.Pregnancy != nil && *r.Pregnancy {
		return false
	}
	if f.hasPublic(PublicNoLactation) && r != nil && r.Lactation != nil && *r.Lactation {
		return false
	}
	if f.hasPublic(PublicChildren3Plus) {
		// Unknown minimum age excludes: we cannot vouch for children.
		if r == nil || r.MinChildAge == nil || *r.MinChildAge > 3 {
			return false
		}
	}
	if f.hasPublic(PublicFlagEpilepsy) && !(r != nil && r.Epilepsy != nil && *r.Epilepsy) {
		return false
	}
	if f.hasPublic(PublicFlagAsthma) && !(r != nil && r.Asthma != nil && *r.Asthma) {
		return false
	}
	return true
}

// oilSearchBlob folds the fields the free-text query is matched against.
func oilSearchBlob(oil models.Oil) string {
	parts := make([]string, 0, 4+len(oil.ExpectedEffects)+len(oil.SuggestedApps)+len(oil.MainConstituents))
	parts = append(parts, oil.NamePT, oil.NameLatin)
	parts = append(parts, oil.ExpectedEffects...)
	parts = append(parts, oil.SuggestedApps...)
	parts = append(parts, oil.ConstituentNames()...)
	return textnorm.Join(parts...)
}

// matchesAny implements the vacuously-true membership predicate used by all
// taxonomy dimensions: with nothing selected every item passes, otherwise at
// least one of the item's values must fold-equal a selected value.
func matchesAny(values []string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		set[textnorm.Normalize(s)] = struct{}{}
	}
	for _, v := range values {
		if _, ok := set[textnorm.Normalize(v)]; ok {
			return true
		}
	}
	return false
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// sortOils orders rows in place. Relevance is score descending with a
// locale-aware name tie-break; the comparison is stable, so equal entries
// keep their relative collection order.
func sortOils(rows []models.Oil, key string, scores map[string]int) {
	coll := newCollator()
	switch key {
	case OilSortName:
		sort.SliceStable(rows, func(i, j int) bool {
			return coll.CompareString(rows[i].NamePT, rows[j].NamePT) < 0
		})
	case OilSortCategory:
		sort.SliceStable(rows, func(i, j int) bool {
			return coll.CompareString(rows[i].Category, rows[j].Category) < 0
		})
	case OilSortFamily:
		sort.SliceStable(rows, func(i, j int) bool {
			return coll.CompareString(rows[i].BotanicalFamily, rows[j].BotanicalFamily) < 0
		})
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			si, sj := scores[rows[i].ID], scores[rows[j].ID]
			if si != sj {
				return si > sj
			}
			return coll.CompareString(rows[i].NamePT, rows[j].NamePT) < 0
		})
	}
}

// Collators buffer internally and are not safe for concurrent use, so each
// sort pass gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
}
