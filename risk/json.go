// risk/json.go
package risk

import (
	"encoding/json"
	"math"
)

// An infinite margin (zero leverage: the position cannot be funded)
// has no JSON representation, so MarginRequired travels as a nullable
// field: null on the wire means infinite.

func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	aux := struct {
		alias
		MarginRequired *float64 `json:"margin_required"`
	}{alias: alias(r)}
	if !math.IsInf(r.MarginRequired, 0) {
		aux.MarginRequired = &r.MarginRequired
	}
	return json.Marshal(aux)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	type alias Result
	aux := struct {
		*alias
		MarginRequired *float64 `json:"margin_required"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.MarginRequired == nil {
		r.MarginRequired = math.Inf(1)
	} else {
		r.MarginRequired = *aux.MarginRequired
	}
	return nil
}
