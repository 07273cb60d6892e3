package writers

import (
	"bytes"
	"strings"
	"testing"

	"hpigo-core/predict"
)

func feed(t *testing.T, format string, sort, header bool, list ...predict.Interaction) string {
	t.Helper()
	var buf bytes.Buffer
	in, errCh := StartResultWriter(&buf, format, sort, header, 4)
	for _, it := range list {
		in <- it
	}
	close(in)
	if err := <-errCh; err != nil {
		t.Fatalf("writer: %v", err)
	}
	return buf.String()
}

var rows = []predict.Interaction{
	{Host: "h2", Pathogen: "p1", HostGO: []string{"GO:2"}, PathogenGO: []string{"GO:2"}, Score: 0.8},
	{Host: "h1", Pathogen: "p1", HostGO: []string{"GO:1"}, PathogenGO: []string{"GO:1"}, Score: 0.9},
}

func TestTextSorted(t *testing.T) {
	got := feed(t, FormatText, true, true, rows...)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[1], "h1\t") || !strings.HasPrefix(lines[2], "h2\t") {
		t.Errorf("sort order wrong:\n%s", got)
	}
}

func TestTextStreamingPreservesArrival(t *testing.T) {
	got := feed(t, FormatText, false, false, rows...)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "h2\t") {
		t.Errorf("got:\n%s", got)
	}
}

func TestJSONLAndUnknownFormat(t *testing.T) {
	got := feed(t, FormatJSONL, false, false, rows[0])
	if !strings.Contains(got, `"host":"h2"`) {
		t.Errorf("jsonl row: %s", got)
	}

	var buf bytes.Buffer
	in, errCh := StartResultWriter(&buf, "xml", false, false, 1)
	close(in)
	if err := <-errCh; err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestKnownFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatCSV, FormatJSON, FormatJSONL} {
		if !KnownFormat(f) {
			t.Errorf("%s should be known", f)
		}
	}
	if KnownFormat("yaml") {
		t.Error("yaml should be unknown")
	}
}
