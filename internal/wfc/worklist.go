package wfc

// Worklist is a LIFO stack of positions waiting to be re-evaluated.
// A position that is already pending is not pushed again; a per-cell
// flag makes that check O(1).
type Worklist struct {
	width   int
	stack   []Position
	pending []bool
}

// NewWorklist creates an empty worklist for a width x height grid.
func NewWorklist(width, height int) *Worklist {
	return &Worklist{
		width:   width,
		stack:   make([]Position, 0, width+height),
		pending: make([]bool, width*height),
	}
}

func (w *Worklist) index(p Position) int {
	return p.Y*w.width + p.X
}

// Push adds p unless it is already pending.
func (w *Worklist) Push(p Position) {
	if w.Pending(p) {
		return
	}
	w.pending[w.index(p)] = true
	w.stack = append(w.stack, p)
}

// Pop removes and returns the most recently pushed position.
func (w *Worklist) Pop() (Position, bool) {
	n := len(w.stack)
	if n == 0 {
		return Position{}, false
	}
	p := w.stack[n-1]
	w.stack = w.stack[:n-1]
	w.pending[w.index(p)] = false
	return p, true
}

// Pending reports whether p is waiting in the worklist.
func (w *Worklist) Pending(p Position) bool {
	return w.pending[w.index(p)]
}

// Len returns the number of pending positions.
func (w *Worklist) Len() int {
	return len(w.stack)
}
