package models

import (
	"encoding/json"
	"testing"
)

func TestRecipeIDAcceptsStringAndNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "string id", raw: `{"id":"roll-on","name":"Roll-on"}`, want: "roll-on"},
		{name: "numeric id", raw: `{"id":12,"name":"Spray"}`, want: "12"},
		{name: "null id", raw: `{"id":null,"name":"Sem id"}`, want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var r Recipe
			if err := json.Unmarshal([]byte(tt.raw), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if r.ID.String() != tt.want {
				t.Fatalf("id = %q, want %q", r.ID, tt.want)
			}
		})
	}
}

func TestStringListAcceptsBareString(t *testing.T) {
	t.Parallel()

	var r Recipe
	raw := `{"id":"x","name":"X","purpose":"Sono tranquilo","contraindications":["gravidez","epilepsia"]}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(r.Purpose) != 1 || r.Purpose[0] != "Sono tranquilo" {
		t.Fatalf("purpose = %v, want single-element list", r.Purpose)
	}
	if len(r.Contraindications) != 2 {
		t.Fatalf("contraindications = %v, want 2 entries", r.Contraindications)
	}
}

func TestIngredientUnionRoundTrip(t *testing.T) {
	t.Parallel()

	raw := `{
		"id":"x","name":"X",
		"ingredients":[
			{"type":"essential_oil","name_pt":"Lavanda","latin":"Lavandula angustifolia","drops":3},
			{"type":"carrier_oil","name_pt":"Óleo de coco","amount_ml":10},
			"1 colher de mel"
		]
	}`
	var r Recipe
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(r.Ingredients) != 3 {
		t.Fatalf("expected 3 ingredients, got %d", len(r.Ingredients))
	}

	oil := r.Ingredients[0]
	if oil.Kind != IngredientEssentialOil || oil.Drops == nil || *oil.Drops != 3 {
		t.Fatalf("unexpected essential oil: %+v", oil)
	}
	if got := oil.Display(); got != "Lavanda (Lavandula angustifolia) - 3 gotas" {
		t.Fatalf("display = %q", got)
	}

	carrier := r.Ingredients[1]
	if carrier.Kind != IngredientCarrierOil || carrier.AmountML == nil || *carrier.AmountML != 10 {
		t.Fatalf("unexpected carrier oil: %+v", carrier)
	}
	if got := carrier.Display(); got != "Óleo de coco - 10 ml" {
		t.Fatalf("display = %q", got)
	}

	freeform := r.Ingredients[2]
	if freeform.Kind != IngredientFreeform || freeform.Raw != "1 colher de mel" {
		t.Fatalf("unexpected freeform ingredient: %+v", freeform)
	}

	// Marshal keeps the freeform shape as a bare string.
	out, err := json.Marshal(r.Ingredients[2])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"1 colher de mel"` {
		t.Fatalf("marshalled freeform = %s", out)
	}
}

func TestIngredientNames(t *testing.T) {
	t.Parallel()

	drops := 2
	oil := Ingredient{Kind: IngredientEssentialOil, NamePT: "Bergamota", Latin: "Citrus bergamia", Drops: &drops}
	names := oil.Names()
	if len(names) != 2 || names[0] != "Bergamota" || names[1] != "Citrus bergamia" {
		t.Fatalf("names = %v", names)
	}

	freeform := Ingredient{Kind: IngredientFreeform, Raw: "água destilada"}
	names = freeform.Names()
	if len(names) != 1 || names[0] != "água destilada" {
		t.Fatalf("names = %v", names)
	}
}
