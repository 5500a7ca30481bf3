// Package export renders filtered catalog views as CSV and plain text.
// Every document opens with the filter summary so a reader of the exported
// file knows which slice of the catalog it represents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"aromateca/models"
)

var oilCSVHeader = []string{
	"id", "nome_pt", "nome_latim", "tipo_produto", "categoria",
	"familia_botanica", "familia_olfativa", "parte_usada", "metodo_extracao",
	"efeitos_esperados", "aplicacoes_sugeridas", "veiculos_recomendados",
	"principais_constituintes", "regiao_origem",
}

// OilsCSV writes one row per oil. The filter summary travels as a comment
// line before the header; spreadsheet tools surface it as a stray first row,
// which is accepted in exchange for self-describing files.
func OilsCSV(w io.Writer, oils []models.Oil, summary string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"# " + summary}); err != nil {
		return err
	}
	if err := cw.Write(oilCSVHeader); err != nil {
		return err
	}
	for _, oil := range oils {
		row := []string{
			oil.ID,
			oil.NamePT,
			oil.NameLatin,
			oil.ProductType,
			oil.Category,
			oil.BotanicalFamily,
			oil.OlfactoryFamilyDisplay(),
			oil.PartUsed,
			oil.ExtractionMethodDisplay(),
			strings.Join(oil.ExpectedEffects, "; "),
			strings.Join(oil.SuggestedApps, "; "),
			strings.Join(oil.RecommendedVehicles, "; "),
			strings.Join(oil.ConstituentNames(), "; "),
			oil.OriginRegion,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var recipeCSVHeader = []string{
	"id", "nome", "aplicacao", "dificuldade", "tempo_preparo", "rendimento",
	"proposito", "ingredientes", "tags", "diluicao",
}

// RecipesCSV writes one row per recipe.
func RecipesCSV(w io.Writer, recipes []models.Recipe, summary string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"# " + summary}); err != nil {
		return err
	}
	if err := cw.Write(recipeCSVHeader); err != nil {
		return err
	}
	for _, recipe := range recipes {
		ingredients := make([]string, 0, len(recipe.Ingredients))
		for _, ing := range recipe.Ingredients {
			ingredients = append(ingredients, ing.Display())
		}
		row := []string{
			recipe.ID.String(),
			recipe.Name,
			recipe.Application,
			recipe.Difficulty,
			recipe.PrepTime,
			recipe.Yield,
			strings.Join(recipe.Purpose, "; "),
			strings.Join(ingredients, "; "),
			strings.Join(recipe.Tags, "; "),
			dilutionText(recipe.Dilution),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OilsTXT writes a human-readable listing, one block per oil.
func OilsTXT(w io.Writer, oils []models.Oil, summary string) error {
	bw := &errWriter{w: w}
	bw.line("CATÁLOGO DE ÓLEOS ESSENCIAIS")
	bw.line(summary)
	bw.line(fmt.Sprintf("Total: %d", len(oils)))
	bw.line("")
	for _, oil := range oils {
		title := oil.NamePT
		if oil.NameLatin != "" {
			title += " (" + oil.NameLatin + ")"
		}
		bw.line(title)
		field(bw, "Família botânica", oil.BotanicalFamily)
		field(bw, "Família olfativa", oil.OlfactoryFamilyDisplay())
		field(bw, "Parte usada", oil.PartUsed)
		field(bw, "Método de extração", oil.ExtractionMethodDisplay())
		field(bw, "Efeitos", strings.Join(oil.ExpectedEffects, ", "))
		field(bw, "Aplicações", strings.Join(oil.SuggestedApps, ", "))
		field(bw, "Veículos", strings.Join(oil.RecommendedVehicles, ", "))
		field(bw, "Precauções", oil.Precautions)
		bw.line("")
	}
	return bw.err
}

// RecipesTXT writes a human-readable listing, one block per recipe with its
// full preparation steps.
func RecipesTXT(w io.Writer, recipes []models.Recipe, summary string) error {
	bw := &errWriter{w: w}
	bw.line("RECEITAS DE AROMATERAPIA")
	bw.line(summary)
	bw.line(fmt.Sprintf("Total: %d", len(recipes)))
	bw.line("")
	for _, recipe := range recipes {
		bw.line(recipe.Name)
		field(bw, "Aplicação", recipe.Application)
		field(bw, "Dificuldade", recipe.Difficulty)
		field(bw, "Tempo de preparo", recipe.PrepTime)
		field(bw, "Rendimento", recipe.Yield)
		field(bw, "Diluição", dilutionText(recipe.Dilution))
		if len(recipe.Ingredients) > 0 {
			bw.line("  Ingredientes:")
			for _, ing := range recipe.Ingredients {
				bw.line("    - " + ing.Display())
			}
		}
		if len(recipe.Steps) > 0 {
			bw.line("  Modo de preparo:")
			for i, step := range recipe.Steps {
				bw.line(fmt.Sprintf("    %d. %s", i+1, step))
			}
		}
		if notes := strings.Join(recipe.SafetyNotes, ", "); notes != "" {
			field(bw, "Segurança", notes)
		}
		bw.line("")
	}
	return bw.err
}

func dilutionText(d *models.RecipeDilution) string {
	if d == nil {
		return ""
	}
	var parts []string
	if d.Percent != nil {
		parts = append(parts, fmt.Sprintf("%g%%", *d.Percent))
	}
	if d.Context != "" {
		parts = append(parts, d.Context)
	}
	if d.Note != "" {
		parts = append(parts, d.Note)
	}
	return strings.Join(parts, " - ")
}

func field(bw *errWriter, label, value string) {
	if value != "" {
		bw.line("  " + label + ": " + value)
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s+"\n")
}
