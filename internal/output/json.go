// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"hpigo-core/predict"
)

// WriteJSON writes a single pretty-indented JSON array of v1 interactions.
func WriteJSON(w io.Writer, list []predict.Interaction) error {
	out := make([]any, 0, len(list))
	for _, it := range list {
		out = append(out, ToAPIInteraction(it))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// StreamJSONL writes one JSON object per line as interactions arrive.
func StreamJSONL(w io.Writer, ch <-chan predict.Interaction) error {
	enc := json.NewEncoder(w)
	for it := range ch {
		if err := enc.Encode(ToAPIInteraction(it)); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSONL writes one JSON object per line from a buffered slice.
func WriteJSONL(w io.Writer, list []predict.Interaction) error {
	enc := json.NewEncoder(w)
	for _, it := range list {
		if err := enc.Encode(ToAPIInteraction(it)); err != nil {
			return err
		}
	}
	return nil
}
