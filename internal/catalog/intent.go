package catalog

import "strings"

// Intent lexicons map the human-facing therapeutic intents offered by the
// filter UI to the keyword stems that identify them in free text. Stems are
// stored pre-folded (lowercase, no diacritics) so they can be matched
// directly against normalized blobs.
//
// The two catalogs carry distinct lexicons: oil intents are matched against
// expected effects, recipe intents against purpose and tags.

var oilIntentTerms = map[string][]string{
	"Relaxamento/Ansiedade":       {"ansiedad", "relax", "calma", "estresse", "tensao", "nervos", "stress"},
	"Sono/Insônia":                {"sono", "insonia", "dormir", "adormecer", "descanso"},
	"Foco/Concentração":           {"foco", "concentracao", "aten", "cognit", "mental", "memoria"},
	"Respiratório":                {"respirat", "tosse", "resfri", "rinite", "sinus", "bronq", "congest", "gripe"},
	"Pele/Sensível":               {"dermat", "pele", "sensivel", "cicatriz", "acne", "eczema", "psorias"},
	"Muscular/Dor":                {"muscul", "dor", "mialg", "espasmo", "analges", "articulac", "rigidez"},
	"Antisséptico/Antimicrobiano": {"antissep", "antimicrob", "antibac", "antifung", "desinfet", "purific"},
}

var recipeIntentTerms = map[string][]string{
	"Sono":                  {"sono", "insoni", "insomi", "noturn"},
	"Ansiedade/Relaxamento": {"ansiedad", "relax", "estresse", "calm"},
	"Respiratório":          {"respirat", "congest", "rinite", "sinus", "tosse", "bronq"},
	"Muscular":              {"muscul", "tens", "analges", "dor"},
	"Pele/Face":             {"pele", "face", "serum", "acne", "oleos"},
	"Purificação/Ambiente":  {"purific", "ambiente", "spray", "ar", "odor", "higien"},
	"Foco":                  {"foco", "concentr", "clareza", "vigil", "alerta"},
}

// OilIntents lists the oil intent labels known to the filter engine.
func OilIntents() []string { return intentLabels(oilIntentTerms) }

// RecipeIntents lists the recipe intent labels known to the filter engine.
func RecipeIntents() []string { return intentLabels(recipeIntentTerms) }

func intentLabels(terms map[string][]string) []string {
	labels := make([]string, 0, len(terms))
	for label := range terms {
		labels = append(labels, label)
	}
	return labels
}

// matchesIntent reports whether any keyword of any selected intent occurs in
// the pre-folded blob. Selection is OR across intents and OR across the
// keywords of each intent.
func matchesIntent(blob string, selected []string, terms map[string][]string) bool {
	for _, intent := range selected {
		for _, stem := range terms[intent] {
			if stem != "" && strings.Contains(blob, stem) {
				return true
			}
		}
	}
	return false
}
