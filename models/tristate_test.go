package models

import (
	"encoding/json"
	"testing"
)

func TestTriStateJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want TriState
	}{
		{name: "true", raw: "true", want: TriYes},
		{name: "false", raw: "false", want: TriNo},
		{name: "null", raw: "null", want: TriUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got TriState
			if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}

			out, err := json.Marshal(got)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.raw {
				t.Fatalf("marshalled %s, want %s", out, tt.raw)
			}
		})
	}
}

func TestTriStateRejectsOtherValues(t *testing.T) {
	t.Parallel()

	var got TriState
	if err := json.Unmarshal([]byte(`"sim"`), &got); err == nil {
		t.Fatal("expected error for non-boolean value")
	}
}

func TestTriStateMissingFieldStaysUnknown(t *testing.T) {
	t.Parallel()

	var oil Oil
	if err := json.Unmarshal([]byte(`{"id":"x","nome_pt":"X"}`), &oil); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if oil.Phototoxic.Known() {
		t.Fatal("expected missing flag to stay unknown")
	}
	if oil.Phototoxic.True() || oil.Phototoxic.False() {
		t.Fatal("unknown must be neither true nor false")
	}
}
