// core/obo/obo.go
package obo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	initialTermCapacity = 50000   // go-basic has ~47k terms
	scannerBufferSize   = 1 << 20 // 1 MB
)

// Ontology is a parsed Gene Ontology in OBO flat-file format.
type Ontology struct {
	FormatVersion string
	DataVersion   string
	Terms         []Term
}

// Term is a single [Term] stanza. IsA and PartOf hold the IDs of direct
// parents; other relationship types are not semantically meaningful for
// similarity and are dropped.
type Term struct {
	ID         string
	Name       string
	Namespace  string
	AltIDs     []string
	IsA        []string
	PartOf     []string
	IsObsolete bool
}

// internPool avoids duplicate string allocations for repeated values
// (namespaces, relation targets shared across stanzas).
type internPool struct {
	m map[string]string
}

func newInternPool() *internPool {
	return &internPool{m: make(map[string]string, 64)}
}

func (p *internPool) get(s string) string {
	if v, ok := p.m[s]; ok {
		return v
	}
	p.m[s] = s
	return s
}

// ParseFile parses a GO OBO file from disk.
func ParseFile(path string) (*Ontology, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	ont, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ont, nil
}

// Parse parses an OBO-format ontology from r. Stanza types other than
// [Term] are skipped.
func Parse(r io.Reader) (*Ontology, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)

	ont := &Ontology{Terms: make([]Term, 0, initialTermCapacity)}
	pool := newInternPool()

	inTerm := false
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t")
		if line == "" {
			continue
		}
		if line[0] == '[' {
			inTerm = line == "[Term]"
			if inTerm {
				ont.Terms = append(ont.Terms, Term{})
			}
			continue
		}
		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		if !inTerm {
			switch key {
			case "format-version":
				ont.FormatVersion = val
			case "data-version":
				ont.DataVersion = val
			}
			continue
		}
		t := &ont.Terms[len(ont.Terms)-1]
		switch key {
		case "id":
			t.ID = val
		case "name":
			t.Name = val
		case "namespace":
			t.Namespace = pool.get(val)
		case "alt_id":
			t.AltIDs = append(t.AltIDs, val)
		case "is_a":
			t.IsA = append(t.IsA, pool.get(targetID(val)))
		case "relationship":
			if rel, target, ok := strings.Cut(val, " "); ok && rel == "part_of" {
				t.PartOf = append(t.PartOf, pool.get(targetID(target)))
			}
		case "is_obsolete":
			t.IsObsolete = val == "true"
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ont, nil
}

// targetID strips the trailing "! name" comment from a relationship target.
func targetID(s string) string {
	if i := strings.IndexByte(s, '!'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
