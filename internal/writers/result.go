// internal/writers/result.go
package writers

import (
	"fmt"
	"io"

	"hpigo-core/predict"
	"hpigo/internal/common"
	"hpigo/internal/output"
)

// Formats supported by StartResultWriter.
const (
	FormatText  = "text"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// KnownFormat reports whether format names a registered result writer.
func KnownFormat(format string) bool {
	switch format {
	case FormatText, FormatCSV, FormatJSON, FormatJSONL:
		return true
	}
	return false
}

// StartResultWriter spins up a writer goroutine for predicted interactions.
// text and jsonl stream unless sort is requested; csv and json buffer by
// nature. The error (if any) is delivered on the returned channel after
// the input channel is closed and drained.
func StartResultWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- predict.Interaction, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan predict.Interaction, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case FormatText:
			if sort {
				var buf []predict.Interaction
				for it := range in {
					buf = append(buf, it)
				}
				common.SortInteractions(buf)
				err = output.WriteText(out, buf, header)
			} else {
				err = output.StreamText(out, in, header)
			}

		case FormatCSV:
			var buf []predict.Interaction
			for it := range in {
				buf = append(buf, it)
			}
			if sort {
				common.SortInteractions(buf)
			}
			err = output.WriteCSV(out, buf, header)

		case FormatJSON:
			var buf []predict.Interaction
			for it := range in {
				buf = append(buf, it)
			}
			if sort {
				common.SortInteractions(buf)
			}
			err = output.WriteJSON(out, buf)

		case FormatJSONL:
			if sort {
				var buf []predict.Interaction
				for it := range in {
					buf = append(buf, it)
				}
				common.SortInteractions(buf)
				err = output.WriteJSONL(out, buf)
			} else {
				err = output.StreamJSONL(out, in)
			}

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// Drain so producers never block after a writer error.
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
