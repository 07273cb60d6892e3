// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"hpigo-core/predict"
)

// WriteText prints one TSV line per interaction from a buffered slice.
func WriteText(w io.Writer, list []predict.Interaction, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, it := range list {
		if _, err := fmt.Fprintln(w, FormatRowTSV(it)); err != nil {
			return err
		}
	}
	return nil
}

// StreamText prints TSV lines as interactions arrive on ch.
func StreamText(w io.Writer, ch <-chan predict.Interaction, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for it := range ch {
		if _, err := fmt.Fprintln(w, FormatRowTSV(it)); err != nil {
			return err
		}
	}
	return nil
}
