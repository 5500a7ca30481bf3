package catalog

import (
	"fmt"
	"strings"
)

// Summary renders a one-line, human-readable description of the active oil
// filters. Exporters print it as the document subtitle.
func (f OilFilters) Summary() string {
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("Busca: %q", f.Query))
	}
	appendPart(&parts, "Intenções", f.Intents)
	appendPart(&parts, "Aplicações", f.Applications)
	appendPart(&parts, "Segurança", f.Safety)
	appendPart(&parts, "Públicos", f.Publics)
	appendPart(&parts, "Constituintes", f.Constituents)
	appendPart(&parts, "Tipo", f.ProductTypes)
	appendPart(&parts, "Família Botânica", f.BotanicalFamilies)
	appendPart(&parts, "Família Olfativa", f.OlfactoryFamilies)
	appendPart(&parts, "Parte usada", f.PartsUsed)
	appendPart(&parts, "Método", f.ExtractionMethods)
	appendPart(&parts, "Veículos", f.Vehicles)
	appendPart(&parts, "Região", f.Regions)
	return joinSummary(parts)
}

// Summary renders a one-line description of the active recipe filters.
func (f RecipeFilters) Summary() string {
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("Busca: %q", f.Query))
	}
	appendPart(&parts, "Intenções", f.Intents)
	appendPart(&parts, "Aplicação", f.Applications)
	appendPart(&parts, "Dificuldade", f.Difficulties)
	appendPart(&parts, "Ingredientes", f.Ingredients)
	appendPart(&parts, "Tags", f.Tags)
	appendPart(&parts, "Segurança", f.Safety)
	appendPart(&parts, "Tempo de preparo", f.PrepBands)
	appendPart(&parts, "Diluição", f.Dilutions)
	appendPart(&parts, "Metadados", f.Meta)
	return joinSummary(parts)
}

func appendPart(parts *[]string, label string, values []string) {
	if len(values) > 0 {
		*parts = append(*parts, label+": "+strings.Join(values, ", "))
	}
}

func joinSummary(parts []string) string {
	if len(parts) == 0 {
		return "Sem filtros."
	}
	return strings.Join(parts, " | ")
}
