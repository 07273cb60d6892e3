// core/goterm/goterm.go
package goterm

// A term table maps proteins to their Gene Ontology annotations. Input is
// two-column delimited text (ProteinID, GOTerm), one annotation per line,
// as produced by InterProScan post-processing or hand-curated lists.

// Record is one protein with its annotated GO terms. Immutable once loaded.
type Record struct {
	ID    string
	Terms []string
}

// TermCount returns the total number of (protein, term) annotations.
func TermCount(recs []Record) int {
	n := 0
	for _, r := range recs {
		n += len(r.Terms)
	}
	return n
}
