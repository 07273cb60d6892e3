package predict

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"hpigo-core/goterm"
	"hpigo-core/pairs"
	"hpigo-core/semsim"
)

// stubScorer returns deterministic scores from a function.
type stubScorer struct {
	fn func(host, path []string) (float64, error)
}

func (s stubScorer) Score(host, path []string) (float64, error) { return s.fn(host, path) }

// sharesTerm scores 0.9 when the sets intersect, 0.1 otherwise.
var sharesTerm = stubScorer{fn: func(host, path []string) (float64, error) {
	for _, h := range host {
		for _, p := range path {
			if h == p {
				return 0.9, nil
			}
		}
	}
	return 0.1, nil
}}

func rows(rep Report, kept []Interaction) []string {
	out := make([]string, 0, len(kept))
	for _, it := range kept {
		out = append(out, fmt.Sprintf("%s|%s|%.3f", it.Host, it.Pathogen, it.Score))
	}
	sort.Strings(out)
	return out
}

func collect(t *testing.T, e *Engine, list pairs.List) (Report, []Interaction) {
	t.Helper()
	var kept []Interaction
	rep, err := e.Run(context.Background(), list, func(it Interaction) error {
		kept = append(kept, it)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return rep, kept
}

func TestThresholdScenario(t *testing.T) {
	list := pairs.List{
		Host: []goterm.Record{
			{ID: "h1", Terms: []string{"GO:0000001"}},
			{ID: "h2", Terms: []string{"GO:0000002"}},
		},
		Pathogen: []goterm.Record{
			{ID: "p1", Terms: []string{"GO:0000001"}},
		},
	}
	e := New(sharesTerm, Config{Threshold: 0.5, Workers: 2})
	rep, kept := collect(t, e, list)

	if rep.Pairs != 2 || rep.Chunks != 1 || rep.Kept != 1 || rep.Skipped != 0 {
		t.Errorf("report = %+v", rep)
	}
	if len(kept) != 1 || kept[0].Host != "h1" || kept[0].Pathogen != "p1" || kept[0].Score != 0.9 {
		t.Errorf("kept = %+v", kept)
	}
	if kept[0].HostGO[0] != "GO:0000001" || kept[0].PathogenGO[0] != "GO:0000001" {
		t.Errorf("kept GO columns = %+v", kept[0])
	}
}

func TestEmptyPathogenSide(t *testing.T) {
	list := pairs.List{Host: []goterm.Record{{ID: "h1"}, {ID: "h2"}}}
	e := New(sharesTerm, Config{})
	rep, kept := collect(t, e, list)
	if rep.Pairs != 0 || rep.Chunks != 0 || len(kept) != 0 {
		t.Errorf("report = %+v kept = %+v", rep, kept)
	}
}

func TestFailingPairIsIsolated(t *testing.T) {
	fail := stubScorer{fn: func(host, path []string) (float64, error) {
		if host[0] == "GO:0000013" {
			return 0, semsim.ErrNoScore
		}
		return 0.8, nil
	}}
	list := pairs.List{
		Host: []goterm.Record{
			{ID: "h1", Terms: []string{"GO:0000011"}},
			{ID: "h2", Terms: []string{"GO:0000013"}},
			{ID: "h3", Terms: []string{"GO:0000012"}},
		},
		Pathogen: []goterm.Record{{ID: "p1", Terms: []string{"GO:0000020"}}},
	}
	e := New(fail, Config{Threshold: 0.5, Workers: 3})
	rep, kept := collect(t, e, list)
	if rep.Skipped != 1 || rep.Kept != 2 {
		t.Errorf("report = %+v", rep)
	}
	for _, it := range kept {
		if it.Host == "h2" {
			t.Error("failed pair must be excluded")
		}
	}
}

func TestPanickingScorerIsIsolated(t *testing.T) {
	boom := stubScorer{fn: func(host, path []string) (float64, error) {
		if host[0] == "GO:0000002" {
			panic("poisoned annotation")
		}
		return 0.7, nil
	}}
	list := pairs.List{
		Host: []goterm.Record{
			{ID: "h1", Terms: []string{"GO:0000001"}},
			{ID: "h2", Terms: []string{"GO:0000002"}},
		},
		Pathogen: []goterm.Record{{ID: "p1", Terms: []string{"GO:0000009"}}},
	}
	e := New(boom, Config{Threshold: 0.5, Workers: 2})
	rep, kept := collect(t, e, list)
	if rep.Skipped != 1 || len(kept) != 1 || kept[0].Host != "h1" {
		t.Errorf("report = %+v kept = %+v", rep, kept)
	}
}

func TestChunkingLossless(t *testing.T) {
	const h, p = 7, 5
	list := pairs.List{}
	for i := 0; i < h; i++ {
		list.Host = append(list.Host, goterm.Record{ID: fmt.Sprintf("h%d", i), Terms: []string{"GO:1"}})
	}
	for i := 0; i < p; i++ {
		list.Pathogen = append(list.Pathogen, goterm.Record{ID: fmt.Sprintf("p%d", i), Terms: []string{"GO:1"}})
	}

	keepAll := stubScorer{fn: func(_, _ []string) (float64, error) { return 1, nil }}

	baseline, baseKept := collect(t, New(keepAll, Config{Threshold: 0, ChunkSize: h * p * 2, Workers: 1}), list)
	if baseline.Chunks != 1 || baseline.Kept != h*p {
		t.Fatalf("baseline report = %+v", baseline)
	}

	for _, size := range []int64{1, 2, 3, 16, 34, 35} {
		rep, kept := collect(t, New(keepAll, Config{Threshold: 0, ChunkSize: size, Workers: 4}), list)
		if rep.Kept != h*p {
			t.Errorf("size %d: kept %d, want %d", size, rep.Kept, h*p)
		}
		wantChunks := int((h*p + size - 1) / size)
		if rep.Chunks != wantChunks {
			t.Errorf("size %d: chunks %d, want %d", size, rep.Chunks, wantChunks)
		}
		// Set equality against the unchunked run; order may differ.
		got, want := rows(rep, kept), rows(baseline, baseKept)
		if len(got) != len(want) {
			t.Fatalf("size %d: %d rows, want %d", size, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("size %d: row %d = %s, want %s", size, i, got[i], want[i])
			}
		}
	}
}

func TestIdempotentSetEquality(t *testing.T) {
	list := pairs.List{
		Host:     []goterm.Record{{ID: "h1", Terms: []string{"GO:1"}}, {ID: "h2", Terms: []string{"GO:2"}}},
		Pathogen: []goterm.Record{{ID: "p1", Terms: []string{"GO:1"}}, {ID: "p2", Terms: []string{"GO:2"}}},
	}
	e := New(sharesTerm, Config{Threshold: 0.5, Workers: 4})
	rep1, kept1 := collect(t, e, list)
	rep2, kept2 := collect(t, e, list)
	a, b := rows(rep1, kept1), rows(rep2, kept2)
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("row %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestVisitErrorAborts(t *testing.T) {
	list := pairs.List{
		Host:     []goterm.Record{{ID: "h1", Terms: []string{"GO:1"}}},
		Pathogen: []goterm.Record{{ID: "p1", Terms: []string{"GO:1"}}},
	}
	e := New(sharesTerm, Config{Threshold: 0})
	sentinel := errors.New("writer gone")
	_, err := e.Run(context.Background(), list, func(Interaction) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want sentinel", err)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	list := pairs.List{
		Host:     []goterm.Record{{ID: "h1", Terms: []string{"GO:1"}}},
		Pathogen: []goterm.Record{{ID: "p1", Terms: []string{"GO:1"}}},
	}
	e := New(sharesTerm, Config{})
	if _, err := e.Run(ctx, list, func(Interaction) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
