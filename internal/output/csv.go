// internal/output/csv.go
package output

import (
	"encoding/csv"
	"io"

	"hpigo-core/predict"
)

var csvHeader = []string{"Host", "Pathogen", "Host_GO", "Pathogen_GO", "Similarity_Score"}

// WriteCSV writes comma-delimited rows with the same column order as TSV.
func WriteCSV(w io.Writer, list []predict.Interaction, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
	}
	for _, it := range list {
		rec := []string{
			it.Host, it.Pathogen,
			TermsCell(it.HostGO), TermsCell(it.PathogenGO),
			FormatScore(it.Score),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
