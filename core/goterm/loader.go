// core/goterm/loader.go
package goterm

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads a two-column delimited file (ProteinID, GOTerm) and aggregates
// rows into per-protein records, preserving first-seen protein order and
// de-duplicating terms within a protein.
//
// The delimiter (tab, comma, or semicolon) is sniffed from the first
// non-empty line. A header row is assumed absent when any field of the
// first row starts with "GO:"; otherwise the first row is skipped.
func Load(path string) ([]Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	sc := bufio.NewScanner(fh)
	var (
		sep     byte
		first   = true
		byID    = make(map[string]int)
		seen    = make(map[string]map[string]struct{})
		records []Record
	)

	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			var ok bool
			sep, ok = sniffDelimiter(line)
			if !ok {
				return nil, fmt.Errorf("%s:%d: not a delimited two-column file", path, ln)
			}
			if !hasGOField(line, sep) {
				continue // header row
			}
		}
		fields := splitFields(line, sep)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected 2 columns, got %d", path, ln, len(fields))
		}
		id, term := fields[0], fields[1]
		if id == "" || term == "" {
			return nil, fmt.Errorf("%s:%d: empty field", path, ln)
		}

		idx, ok := byID[id]
		if !ok {
			idx = len(records)
			byID[id] = idx
			records = append(records, Record{ID: id})
			seen[id] = make(map[string]struct{}, 4)
		}
		if _, dup := seen[id][term]; dup {
			continue
		}
		seen[id][term] = struct{}{}
		records[idx].Terms = append(records[idx].Terms, term)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// sniffDelimiter picks the separator from the first data line. Tab wins
// over comma wins over semicolon, matching how mixed exports usually nest.
func sniffDelimiter(line string) (byte, bool) {
	for _, c := range []byte{'\t', ',', ';'} {
		if strings.IndexByte(line, c) >= 0 {
			return c, true
		}
	}
	return 0, false
}

func hasGOField(line string, sep byte) bool {
	for _, f := range splitFields(line, sep) {
		if strings.HasPrefix(f, "GO:") {
			return true
		}
	}
	return false
}

func splitFields(line string, sep byte) []string {
	parts := strings.Split(line, string(sep))
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		out = append(out, p)
	}
	return out
}
