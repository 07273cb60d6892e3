// internal/output/rows.go
package output

import (
	"fmt"
	"strconv"
	"strings"

	"hpigo-core/predict"
	"hpigo/pkg/api"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "Host\tPathogen\tHost_GO\tPathogen_GO\tSimilarity_Score"

// TermsCell joins a GO-term list into one cell. Pipe matches the
// multi-term separator InterProScan itself emits.
func TermsCell(terms []string) string {
	return strings.Join(terms, "|")
}

// FormatScore renders a similarity score with enough precision to
// round-trip while keeping rows diffable.
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'g', 6, 64)
}

// FormatRowTSV returns the 5 result columns (no trailing newline).
func FormatRowTSV(it predict.Interaction) string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
		it.Host, it.Pathogen,
		TermsCell(it.HostGO), TermsCell(it.PathogenGO),
		FormatScore(it.Score),
	)
}

// ToAPIInteraction converts a domain interaction to the stable wire
// schema (v1).
func ToAPIInteraction(it predict.Interaction) api.InteractionV1 {
	return api.InteractionV1{
		Host:            it.Host,
		Pathogen:        it.Pathogen,
		HostGO:          append([]string(nil), it.HostGO...),
		PathogenGO:      append([]string(nil), it.PathogenGO...),
		SimilarityScore: it.Score,
	}
}
