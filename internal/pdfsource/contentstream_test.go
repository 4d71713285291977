package pdfsource

import (
	"testing"

	"github.com/codexforge/bestiary/graphicsstate"
)

func TestScanContent_ImagePaint(t *testing.T) {
	stream := []byte("q 150 0 0 150 300 540 cm /Im7 Do Q")

	ops := scanContent(stream)
	if len(ops) != 4 {
		t.Fatalf("expected 4 ops, got %d: %+v", len(ops), ops)
	}
	if ops[0].Kind != graphicsstate.OpSave {
		t.Errorf("op 0: expected save, got %v", ops[0].Kind)
	}
	if ops[1].Kind != graphicsstate.OpTransform {
		t.Fatalf("op 1: expected transform, got %v", ops[1].Kind)
	}
	want := [6]float64{150, 0, 0, 150, 300, 540}
	for i, v := range want {
		if ops[1].Matrix[i] != v {
			t.Errorf("matrix[%d]: expected %v, got %v", i, v, ops[1].Matrix[i])
		}
	}
	if ops[2].Kind != graphicsstate.OpPaintImage || ops[2].Name != "Im7" {
		t.Errorf("op 2: expected paint of Im7, got %+v", ops[2])
	}
	if ops[3].Kind != graphicsstate.OpRestore {
		t.Errorf("op 3: expected restore, got %v", ops[3].Kind)
	}
}

func TestScanContent_NestedSaves(t *testing.T) {
	stream := []byte("q 1 0 0 1 50 50 cm q 100 0 0 80 0 0 cm /Bg Do Q /Fg Do Q")

	ops := scanContent(stream)
	placements := graphicsstate.NewCollector().Collect(ops)
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}
	// Bg paints under both transforms, Fg only under the outer one.
	if placements[0].BBox.X != 50 || placements[0].BBox.Width != 100 {
		t.Errorf("Bg placement: got %+v", placements[0].BBox)
	}
	if placements[1].BBox.X != 50 || placements[1].BBox.Width != 1 {
		t.Errorf("Fg placement: got %+v", placements[1].BBox)
	}
}

func TestScanContent_IgnoresStringsAndComments(t *testing.T) {
	stream := []byte("BT (q 1 0 0 1 0 0 cm /Fake Do) Tj ET\n" +
		"% 2 0 0 2 0 0 cm /Comment Do\n" +
		"<48656c6c6f> Tj\n" +
		"q 40 0 0 40 10 20 cm /Im1 Do Q")

	ops := scanContent(stream)
	var paints []string
	for _, op := range ops {
		if op.Kind == graphicsstate.OpPaintImage {
			paints = append(paints, op.Name)
		}
	}
	if len(paints) != 1 || paints[0] != "Im1" {
		t.Errorf("expected only Im1 painted, got %v", paints)
	}
}

func TestScanContent_EscapedParens(t *testing.T) {
	stream := []byte("(literal with \\) escaped paren) Tj q 10 0 0 10 0 0 cm /ImA Do Q")

	ops := scanContent(stream)
	found := false
	for _, op := range ops {
		if op.Kind == graphicsstate.OpPaintImage && op.Name == "ImA" {
			found = true
		}
	}
	if !found {
		t.Error("expected ImA paint to survive the escaped paren")
	}
}

func TestScanContent_ShortOperandWindow(t *testing.T) {
	// cm with fewer than six numbers contributes nothing.
	ops := scanContent([]byte("1 2 3 cm /Im1 Do"))
	for _, op := range ops {
		if op.Kind == graphicsstate.OpTransform {
			t.Errorf("unexpected transform from short operand list: %+v", op)
		}
	}
}

func TestScanContent_Empty(t *testing.T) {
	if ops := scanContent(nil); len(ops) != 0 {
		t.Errorf("expected no ops from empty stream, got %d", len(ops))
	}
}
