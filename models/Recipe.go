package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Recipe is a blend recipe record. As with Oil, the JSON field names match
// the recipes_catalog.json file format.
type Recipe struct {
	ID                RecipeID        `json:"id"`
	Name              string          `json:"name"`
	Purpose           StringList      `json:"purpose,omitempty"`
	Application       string          `json:"application,omitempty"`
	Difficulty        string          `json:"difficulty,omitempty"`
	PrepTime          string          `json:"prep_time,omitempty"`
	Yield             string          `json:"yield,omitempty"`
	Ingredients       []Ingredient    `json:"ingredients,omitempty"`
	Steps             []string        `json:"steps,omitempty"`
	Dilution          *RecipeDilution `json:"dilution,omitempty"`
	Validity          string          `json:"validity,omitempty"`
	Contraindications StringList      `json:"contraindications,omitempty"`
	SafetyNotes       StringList      `json:"safety_notes,omitempty"`
	Tags              []string        `json:"tags,omitempty"`
	References        []Reference     `json:"references,omitempty"`
}

// RecipeDilution captures recorded dilution guidance for a recipe.
type RecipeDilution struct {
	Context string   `json:"context,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
	Note    string   `json:"note,omitempty"`
}

// Reference is a bibliographic pointer backing a recipe.
type Reference struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// RecipeID is a recipe identifier. Legacy catalogs carry both string and
// numeric ids; numeric ids are folded into their decimal string form so that
// identity comparison is stable.
type RecipeID string

func (id *RecipeID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecipeID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("recipe id: cannot decode %s", trimmed)
	}
	*id = RecipeID(n.String())
	return nil
}

func (id RecipeID) String() string { return string(id) }

// StringList tolerates both a bare string and an array of strings, a shape
// that occurs in hand-edited catalog files for purpose, contraindications
// and safety notes.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*l = nil
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*l = values
	return nil
}

// IngredientKind discriminates the ingredient variants.
type IngredientKind string

const (
	IngredientEssentialOil IngredientKind = "essential_oil"
	IngredientCarrierOil   IngredientKind = "carrier_oil"
	IngredientSolvent      IngredientKind = "solvent"
	IngredientSolubilizer  IngredientKind = "solubilizer"
	IngredientWater        IngredientKind = "water"
	// IngredientFreeform is the tolerated legacy form: a bare display string.
	IngredientFreeform IngredientKind = ""
)

// Ingredient is a tagged union over the recipe ingredient variants.
// Essential oils carry a latin name and drop count; measured ingredients
// carry a millilitre amount; the freeform variant is display text only.
type Ingredient struct {
	Kind     IngredientKind
	NamePT   string
	Latin    string
	Drops    *int
	AmountML *float64
	Raw      string
}

type ingredientJSON struct {
	Type     IngredientKind `json:"type,omitempty"`
	NamePT   string         `json:"name_pt,omitempty"`
	Latin    string         `json:"latin,omitempty"`
	Drops    *int           `json:"drops,omitempty"`
	AmountML *float64       `json:"amount_ml,omitempty"`
}

func (i *Ingredient) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Ingredient{Kind: IngredientFreeform, Raw: s}
		return nil
	}
	var raw ingredientJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Ingredient{
		Kind:     raw.Type,
		NamePT:   raw.NamePT,
		Latin:    raw.Latin,
		Drops:    raw.Drops,
		AmountML: raw.AmountML,
	}
	return nil
}

func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.Kind == IngredientFreeform && i.NamePT == "" {
		return json.Marshal(i.Raw)
	}
	return json.Marshal(ingredientJSON{
		Type:     i.Kind,
		NamePT:   i.NamePT,
		Latin:    i.Latin,
		Drops:    i.Drops,
		AmountML: i.AmountML,
	})
}

// Names returns the searchable names of the ingredient: the Portuguese name
// and, for essential oils, the latin binomial. Freeform ingredients expose
// their raw text.
func (i Ingredient) Names() []string {
	switch i.Kind {
	case IngredientEssentialOil:
		if i.Latin != "" {
			return []string{i.NamePT, i.Latin}
		}
		return []string{i.NamePT}
	case IngredientCarrierOil, IngredientSolvent, IngredientSolubilizer, IngredientWater:
		return []string{i.NamePT}
	default:
		if i.Raw != "" {
			return []string{i.Raw}
		}
		return []string{i.NamePT}
	}
}

// Display renders the ingredient as a single line for lists and exports.
func (i Ingredient) Display() string {
	switch i.Kind {
	case IngredientEssentialOil:
		parts := []string{i.NamePT}
		if i.Latin != "" {
			parts = append(parts, "("+i.Latin+")")
		}
		if i.Drops != nil {
			parts = append(parts, "- "+strconv.Itoa(*i.Drops)+" gotas")
		}
		return strings.Join(parts, " ")
	case IngredientCarrierOil, IngredientSolvent, IngredientSolubilizer, IngredientWater:
		if i.AmountML != nil {
			return i.NamePT + " - " + strconv.FormatFloat(*i.AmountML, 'f', -1, 64) + " ml"
		}
		return i.NamePT
	default:
		if i.Raw != "" {
			return i.Raw
		}
		return i.NamePT
	}
}
