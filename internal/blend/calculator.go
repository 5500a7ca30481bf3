// Package blend implements the dilution calculator: given a carrier volume,
// a target audience and a set of oils tagged with an aromatic note, it
// produces the total essential-oil volume, per-note caps, per-oil
// allocations and limit alerts.
package blend

import (
	"fmt"
	"strconv"
)

// Note is the aromatic note of an oil inside a blend.
type Note string

const (
	NoteTop    Note = "top"
	NoteMiddle Note = "middle"
	NoteBase   Note = "base"
)

// Valid reports whether n is one of the three known notes.
func (n Note) Valid() bool {
	return n == NoteTop || n == NoteMiddle || n == NoteBase
}

// Audience identifies the person the blend is prepared for. Each audience
// carries a fixed default and maximum dilution percent.
type Audience string

const (
	AudienceChildren5To14  Audience = "children_5_14"
	AudienceChildrenOver14 Audience = "children_over_14"
	AudienceAdults         Audience = "adults"
	AudienceElderly        Audience = "elderly"
)

type audienceRule struct {
	Label       string
	MaxDilution float64
}

// Dilution policy per audience. The default equals the maximum; a manual
// percent below the maximum may override it.
var audienceRules = map[Audience]audienceRule{
	AudienceChildren5To14:  {Label: "Crianças de 5 a 14 anos", MaxDilution: 1.25},
	AudienceChildrenOver14: {Label: "Crianças acima de 14 anos", MaxDilution: 5},
	AudienceAdults:         {Label: "Adultos", MaxDilution: 5},
	AudienceElderly:        {Label: "Idosos", MaxDilution: 1.25},
}

// Note ceilings as percentages of the total essential-oil volume. Policy
// constants, not configurable per call.
var noteCeilings = map[Note]float64{
	NoteTop:    15,
	NoteMiddle: 80,
	NoteBase:   5,
}

// DropsPerML converts millilitres to drops.
const DropsPerML = 25

// MaxOils bounds the number of oils in one blend.
const MaxOils = 5

// Oil is one blend entry: an optional display name plus its note.
type Oil struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Note Note   `json:"note"`
}

// Allocation is the computed share of one oil.
type Allocation struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Note  Note   `json:"note"`
	ML    string `json:"ml"`
	Drops int    `json:"drops"`
}

// Result is the full calculator output.
type Result struct {
	Audience        Audience        `json:"audience"`
	AudienceLabel   string          `json:"audience_label"`
	DilutionPercent float64         `json:"dilution_percent"`
	TotalML         string          `json:"total_ml"`
	TotalDrops      int             `json:"total_drops"`
	NoteCounts      map[Note]int    `json:"note_counts"`
	NoteMLs         map[Note]string `json:"note_mls"`
	NoteDrops       map[Note]int    `json:"note_drops"`
	Allocations     []Allocation    `json:"allocations"`
	Violations      []Note          `json:"violations"`
	CeilingAlerts   []string        `json:"ceiling_alerts"`
}

// AudienceLabel returns the display label for a, empty when unknown.
func AudienceLabel(a Audience) string { return audienceRules[a].Label }

// AudienceMax returns the maximum dilution percent for a and whether a is a
// known audience.
func AudienceMax(a Audience) (float64, bool) {
	rule, ok := audienceRules[a]
	return rule.MaxDilution, ok
}

// ValidateDilution checks a manual dilution percent against the audience
// policy. It is independent of Compute: the caller reports the message and
// only invokes Compute with values that passed.
func ValidateDilution(value float64, audience Audience) (bool, string) {
	rule, ok := audienceRules[audience]
	if !ok {
		return false, "Selecione um público-alvo primeiro"
	}
	if value <= 0 {
		return false, "Digite um valor válido"
	}
	if value > rule.MaxDilution {
		max := strconv.FormatFloat(rule.MaxDilution, 'f', -1, 64)
		return false, fmt.Sprintf("A diluição máxima para este público é de %s%%. Por favor, ajuste o valor.", max)
	}
	return true, ""
}

// Compute runs the allocation pipeline. It returns nil when any
// precondition is unmet (non-positive carrier volume, unknown audience, no
// oils, more than MaxOils); the caller renders a prompt rather than an
// error. A manualPercent of zero or less means "use the audience default";
// Compute trusts the value and does not re-clamp, per ValidateDilution's
// contract.
func Compute(carrierML float64, audience Audience, manualPercent float64, oils []Oil) *Result {
	rule, ok := audienceRules[audience]
	if !ok || carrierML <= 0 || len(oils) == 0 || len(oils) > MaxOils {
		return nil
	}

	percent := rule.MaxDilution
	if manualPercent > 0 {
		percent = manualPercent
	}

	totalML := carrierML * percent / 100

	counts := map[Note]int{}
	for _, oil := range oils {
		counts[oil.Note]++
	}

	noteML := map[Note]float64{}
	for note, ceiling := range noteCeilings {
		noteML[note] = totalML * ceiling / 100
	}

	allocations := make([]Allocation, 0, len(oils))
	for _, oil := range oils {
		perOil := 0.0
		if n := counts[oil.Note]; n > 0 {
			perOil = noteML[oil.Note] / float64(n)
		}
		name := oil.Name
		if name == "" {
			name = "Óleo " + string(oil.Note)
		}
		allocations = append(allocations, Allocation{
			ID:    oil.ID,
			Name:  name,
			Note:  oil.Note,
			ML:    formatML(perOil),
			Drops: roundDrops(perOil),
		})
	}

	// Allocations come from the ceilings themselves, so this only fires
	// if the ceiling table changes shape.
	violations := make([]Note, 0)
	for _, note := range []Note{NoteTop, NoteMiddle, NoteBase} {
		if counts[note] > 0 && noteML[note] > totalML*noteCeilings[note]/100 {
			violations = append(violations, note)
		}
	}

	result := &Result{
		Audience:        audience,
		AudienceLabel:   rule.Label,
		DilutionPercent: percent,
		TotalML:         formatTotalML(totalML),
		TotalDrops:      roundDrops(totalML),
		NoteCounts:      counts,
		NoteMLs: map[Note]string{
			NoteTop:    formatML(noteML[NoteTop]),
			NoteMiddle: formatML(noteML[NoteMiddle]),
			NoteBase:   formatML(noteML[NoteBase]),
		},
		NoteDrops: map[Note]int{
			NoteTop:    roundDrops(noteML[NoteTop]),
			NoteMiddle: roundDrops(noteML[NoteMiddle]),
			NoteBase:   roundDrops(noteML[NoteBase]),
		},
		Allocations: allocations,
		Violations:  violations,
	}
	result.CeilingAlerts = ceilingAlerts(result)
	return result
}

var ceilingAlertMessages = map[Note]string{
	NoteTop:    "O percentual de nota alta ultrapassa o limite recomendado de 15%. Ajuste a composição para manter o equilíbrio aromático.",
	NoteMiddle: "O percentual de nota média ultrapassa o limite recomendado de 80%. Considere redistribuir entre as outras notas.",
	NoteBase:   "O percentual de nota baixa ultrapassa o limite recomendado de 5%. Reduza a quantidade para evitar dominância no aroma.",
}

// ceilingAlerts recomputes each note's share from the rounded display
// strings, the way the result card presents them. Because the comparison
// runs on rounded intermediates rather than the exact values, it can flag
// genuine over-ceiling situations the exact-value check never sees. Both
// checks are kept deliberately.
func ceilingAlerts(r *Result) []string {
	total, err := strconv.ParseFloat(r.TotalML, 64)
	if err != nil || total <= 0 {
		return nil
	}
	var alerts []string
	for _, note := range []Note{NoteTop, NoteMiddle, NoteBase} {
		ml, err := strconv.ParseFloat(r.NoteMLs[note], 64)
		if err != nil {
			continue
		}
		if ml/total*100 > noteCeilings[note] {
			alerts = append(alerts, ceilingAlertMessages[note])
		}
	}
	return alerts
}

func formatML(v float64) string      { return strconv.FormatFloat(v, 'f', 3, 64) }
func formatTotalML(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func roundDrops(ml float64) int {
	return int(ml*DropsPerML + 0.5)
}
