package models

// Oil is an essential-oil reference record. The JSON field names follow the
// catalog file format (oils_catalog.json) so that existing exports remain
// importable without a migration step.
type Oil struct {
	ID                  string        `json:"id"`
	ProductType         string        `json:"tipo_produto,omitempty"`
	NamePT              string        `json:"nome_pt"`
	NameLatin           string        `json:"nome_latim,omitempty"`
	Category            string        `json:"categoria,omitempty"`
	BotanicalFamily     string        `json:"familia_botanica,omitempty"`
	OlfactoryFamily     string        `json:"familia_olfativa,omitempty"`
	OlfactoryFamilyRaw  string        `json:"familia_olfativa_raw,omitempty"`
	PartUsed            string        `json:"parte_usada,omitempty"`
	ExtractionMethod    string        `json:"metodo_extracao,omitempty"`
	ExtractionMethodRaw string        `json:"metodo_extracao_raw,omitempty"`
	MainConstituents    []Constituent `json:"principais_constituintes,omitempty"`
	ExpectedEffects     []string      `json:"efeitos_esperados,omitempty"`
	SuggestedApps       []string      `json:"aplicacoes_sugeridas,omitempty"`
	RecommendedVehicles []string      `json:"veiculos_recomendados,omitempty"`

	TraditionalProperties string `json:"propriedades_tradicionais,omitempty"`
	Ethnobotany           string `json:"etnobotanica_geral,omitempty"`
	Precautions           string `json:"precaucoes,omitempty"`
	Contraindications     string `json:"contraindicacoes,omitempty"`
	QuickSafetyNotes      string `json:"notas_rapidas_seguranca,omitempty"`

	SafeSensitiveSkin TriState `json:"uso_pele_sensivel"`
	SafeClinicalUse   TriState `json:"uso_ambiente_clinico"`
	SafeScalp         TriState `json:"uso_couro_cabeludo"`
	Phototoxic        TriState `json:"fototoxico"`
	Sensitizing       TriState `json:"sensibilizante"`

	Restricted *RestrictedGroups `json:"publicos_restritos,omitempty"`

	OriginRegion      string     `json:"regiao_origem,omitempty"`
	Dilutions         *Dilutions `json:"diluicoes,omitempty"`
	Synergies         []string   `json:"sinergias_sugeridas,omitempty"`
	Incompatibilities []string   `json:"incompatibilidades_praticas,omitempty"`
	Sources           []Source   `json:"fontes,omitempty"`
}

// Constituent is a named chemical constituent with an optional percentage.
type Constituent struct {
	Name    string   `json:"nome"`
	Percent *float64 `json:"percentual,omitempty"`
}

// Dilutions captures the recorded dilution guidance for an oil.
type Dilutions struct {
	General       string    `json:"geral,omitempty"`
	PercentValues []float64 `json:"valores_percent,omitempty"`
}

// RestrictedGroups records populations for which an oil carries warnings.
// Pointer booleans distinguish "not recorded" from an explicit false.
type RestrictedGroups struct {
	Pregnancy   *bool    `json:"gravidez,omitempty"`
	Lactation   *bool    `json:"lactacao,omitempty"`
	MinChildAge *float64 `json:"criancas_min_idade,omitempty"`
	Epilepsy    *bool    `json:"epilepsia,omitempty"`
	Asthma      *bool    `json:"asma,omitempty"`
}

// Source is a bibliographic pointer backing a catalog entry.
type Source struct {
	URL string `json:"url,omitempty"`
	Ref string `json:"ref,omitempty"`
}

// OlfactoryFamilyDisplay returns the raw olfactory family when present,
// falling back to the normalized one. Filtering and display both prefer raw.
func (o Oil) OlfactoryFamilyDisplay() string {
	if o.OlfactoryFamilyRaw != "" {
		return o.OlfactoryFamilyRaw
	}
	return o.OlfactoryFamily
}

// ExtractionMethodDisplay returns the raw extraction method when present,
// falling back to the normalized one.
func (o Oil) ExtractionMethodDisplay() string {
	if o.ExtractionMethodRaw != "" {
		return o.ExtractionMethodRaw
	}
	return o.ExtractionMethod
}

// ConstituentNames returns the names of the main constituents.
func (o Oil) ConstituentNames() []string {
	if len(o.MainConstituents) == 0 {
		return nil
	}
	names := make([]string, 0, len(o.MainConstituents))
	for _, c := range o.MainConstituents {
		names = append(names, c.Name)
	}
	return names
}
