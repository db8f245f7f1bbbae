package graphics

import (
	"fmt"

	"github.com/tsawler/planvec/model"
)

// State represents the subset of the PDF graphics state the vector
// extractor depends on
type State struct {
	// Current Transformation Matrix
	CTM model.Matrix

	// Line width in user space
	LineWidth float64

	stack []State
}

// NewState creates a graphics state with default values
func NewState() *State {
	return &State{
		CTM:       model.Identity(),
		LineWidth: 1.0,
	}
}

// Save pushes the current graphics state onto the stack (q operator)
func (gs *State) Save() {
	gs.stack = append(gs.stack, State{CTM: gs.CTM, LineWidth: gs.LineWidth})
}

// Restore pops a graphics state from the stack (Q operator)
func (gs *State) Restore() error {
	if len(gs.stack) == 0 {
		return fmt.Errorf("graphics state stack underflow")
	}
	saved := gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]
	gs.CTM = saved.CTM
	gs.LineWidth = saved.LineWidth
	return nil
}

// Transform applies a transformation matrix to the CTM (cm operator)
func (gs *State) Transform(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// DeviceLineWidth returns the line width mapped to device space
func (gs *State) DeviceLineWidth() float64 {
	return gs.LineWidth * gs.CTM.ScaleFactor()
}
