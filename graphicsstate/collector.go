package graphicsstate

import "github.com/codexforge/bestiary/model"

// OpKind identifies one paint-stream operator
type OpKind int

const (
	// OpSave pushes the transform state (q)
	OpSave OpKind = iota
	// OpRestore pops the transform state (Q)
	OpRestore
	// OpTransform concatenates a matrix (cm)
	OpTransform
	// OpPaintImage paints the named image through the active transform (Do)
	OpPaintImage
)

// Op is one operator-level event from a page's paint stream, as supplied
// by the document-rendering collaborator.
type Op struct {
	Kind   OpKind
	Matrix model.Matrix // for OpTransform
	Name   string       // for OpPaintImage
}

// Placement records where one image paint landed in page space
type Placement struct {
	// Name is the painted image's resource name
	Name string

	// BBox is the unit square mapped through the transform at paint time
	BBox model.BBox
}

// Collector replays a paint stream and records image placements
type Collector struct {
	state *State
}

// NewCollector creates a collector with a fresh transform state
func NewCollector() *Collector {
	return &Collector{state: NewState()}
}

// Collect replays the operators for one page and returns the image
// placements in paint order. Unbalanced restores are ignored rather than
// failed: a malformed stream degrades a page, never the run.
func (c *Collector) Collect(ops []Op) []Placement {
	c.state.Reset()

	var placements []Placement
	for _, op := range ops {
		switch op.Kind {
		case OpSave:
			c.state.Save()
		case OpRestore:
			_ = c.state.Restore()
		case OpTransform:
			c.state.Transform(op.Matrix)
		case OpPaintImage:
			placements = append(placements, Placement{
				Name: op.Name,
				BBox: c.state.CTM.UnitSquareBBox(),
			})
		}
	}
	return placements
}
