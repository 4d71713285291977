package htmldoc

import (
	"strings"
	"testing"

	"github.com/codexforge/bestiary/textrun"
)

func TestSource_RunsRoundTrip(t *testing.T) {
	page := `<html><body><h1>Goblin</h1><p>Small humanoid, neutral evil</p></body></html>`

	src, err := FromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	defer src.Close()

	runs, err := src.Runs(0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	lines := textrun.NewNormalizer().Normalize(runs)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines after normalization, got %d", len(lines))
	}
	if lines[0].Text != "Goblin" || !lines[0].IsHeader {
		t.Errorf("expected Goblin header line, got %+v", lines[0])
	}
	if lines[1].IsHeader {
		t.Errorf("body line flagged as header: %+v", lines[1])
	}
}

func TestSource_PageBounds(t *testing.T) {
	src, err := FromReader(strings.NewReader(`<html><body><p>x</p></body></html>`))
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	defer src.Close()

	n, err := src.PageCount()
	if err != nil || n != 1 {
		t.Fatalf("PageCount: %d, %v", n, err)
	}
	w, h, err := src.PageSize(0)
	if err != nil || w != 612 || h != 792 {
		t.Fatalf("PageSize: %v x %v, %v", w, h, err)
	}
	if _, _, err := src.PageSize(1); err == nil {
		t.Error("expected error for page out of range")
	}
	if _, err := src.Image("Im1"); err == nil {
		t.Error("expected error for image lookup")
	}
}
