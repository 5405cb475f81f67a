package wfc

import (
	"errors"
	"fmt"
)

var (
	ErrContradiction    = errors.New("wfc: contradiction")
	ErrUnknownTileCode  = errors.New("wfc: unknown tile code")
	ErrOutOfBounds      = errors.New("wfc: position out of bounds")
	ErrInvalidSize      = errors.New("wfc: invalid grid size")
	ErrEmptyCatalog     = errors.New("wfc: catalog has no tiles")
	ErrAlreadyCollapsed = errors.New("wfc: cell already collapsed")
)

// ContradictionError reports a cell whose candidate set would become empty.
// The cell keeps its previous candidates; the run is over.
type ContradictionError struct {
	Pos       Position
	Before    TileSet // candidates before the failing restriction
	Forbidden TileSet // codes the neighbour ruled out
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: contradiction at %s: candidates %s all forbidden by %s",
		e.Pos, e.Before, e.Forbidden)
}

// Is makes errors.Is(err, ErrContradiction) match.
func (e *ContradictionError) Is(target error) bool {
	return target == ErrContradiction
}
