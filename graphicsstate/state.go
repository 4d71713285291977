package graphicsstate

import (
	"fmt"

	"github.com/codexforge/bestiary/model"
)

// State holds the current transformation matrix and its save stack
type State struct {
	// CTM is the current transformation matrix
	CTM model.Matrix

	stack []model.Matrix
}

// NewState creates a state with an identity transform
func NewState() *State {
	return &State{CTM: model.Identity()}
}

// Save pushes the current transform onto the stack
func (s *State) Save() {
	s.stack = append(s.stack, s.CTM)
}

// Restore pops a transform from the stack
func (s *State) Restore() error {
	if len(s.stack) == 0 {
		return fmt.Errorf("graphics state stack underflow")
	}
	s.CTM = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// Transform concatenates a matrix onto the current transform
func (s *State) Transform(m model.Matrix) {
	s.CTM = m.Multiply(s.CTM)
}

// Reset restores the identity transform and clears the stack, ready for
// the next page.
func (s *State) Reset() {
	s.CTM = model.Identity()
	s.stack = s.stack[:0]
}
