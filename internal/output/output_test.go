package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hpigo-core/predict"
	"hpigo/pkg/api"
)

var sample = []predict.Interaction{
	{
		Host:       "AT1G01010",
		Pathogen:   "PITG_00123",
		HostGO:     []string{"GO:0006355", "GO:0003700"},
		PathogenGO: []string{"GO:0006355"},
		Score:      0.873,
	},
}

func TestWriteTextGolden(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sample, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := TSVHeader + "\n" +
		"AT1G01010\tPITG_00123\tGO:0006355|GO:0003700\tGO:0006355\t0.873\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteTextNoHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sample, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(buf.String(), "Host\t") {
		t.Error("header should be suppressed")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if lines[0] != "Host,Pathogen,Host_GO,Pathogen_GO,Similarity_Score" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "AT1G01010,PITG_00123,GO:0006355|GO:0003700,GO:0006355,0.873" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got []api.InteractionV1
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].Host != "AT1G01010" || got[0].SimilarityScore != 0.873 {
		t.Errorf("got %+v", got)
	}
	if len(got[0].HostGO) != 2 {
		t.Errorf("host_go = %v", got[0].HostGO)
	}
}

func TestStreamJSONL(t *testing.T) {
	ch := make(chan predict.Interaction, 1)
	ch <- sample[0]
	close(ch)
	var buf bytes.Buffer
	if err := StreamJSONL(&buf, ch); err != nil {
		t.Fatalf("stream: %v", err)
	}
	var got api.InteractionV1
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Pathogen != "PITG_00123" {
		t.Errorf("got %+v", got)
	}
}
