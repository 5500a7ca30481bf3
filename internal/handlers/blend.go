package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"aromateca/internal/blend"
)

type blendRequest struct {
	CarrierML       float64     `json:"carrier_ml"`
	Audience        string      `json:"audience"`
	DilutionPercent float64     `json:"dilution_percent"`
	Oils            []blend.Oil `json:"oils"`
}

// ComputeBlend runs the dilution calculator over the posted blend. The
// dilution percent is optional; zero means the audience default.
func ComputeBlend(w http.ResponseWriter, r *http.Request) {
	var req blendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	audience := blend.Audience(req.Audience)
	if _, known := blend.AudienceMax(audience); !known {
		writeJSONError(w, http.StatusBadRequest, "Selecione um público-alvo primeiro")
		return
	}
	if req.CarrierML <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Informe o volume do óleo carreador")
		return
	}
	if len(req.Oils) == 0 {
		writeJSONError(w, http.StatusBadRequest, "Adicione pelo menos um óleo essencial")
		return
	}
	if len(req.Oils) > blend.MaxOils {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("A mistura aceita no máximo %d óleos", blend.MaxOils))
		return
	}
	for _, oil := range req.Oils {
		if !oil.Note.Valid() {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("nota aromática inválida: %q", oil.Note))
			return
		}
	}
	if req.DilutionPercent > 0 {
		if ok, msg := blend.ValidateDilution(req.DilutionPercent, audience); !ok {
			writeJSONError(w, http.StatusBadRequest, msg)
			return
		}
	}

	result := blend.Compute(req.CarrierML, audience, req.DilutionPercent, req.Oils)
	if result == nil {
		writeJSONError(w, http.StatusBadRequest, "não foi possível calcular a mistura")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
