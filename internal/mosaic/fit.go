package mosaic

import (
	"context"
	"fmt"
)

// Relaxation records which fallback, if any, the fitter needed for a cell.
type Relaxation int

const (
	// RelaxNone means the cell got a candidate satisfying both constraints.
	RelaxNone Relaxation = iota
	// RelaxSpacing means no candidate satisfied both constraints; the
	// spacing check was dropped and the repeat cap kept.
	RelaxSpacing
	// RelaxAll means even the repeat cap had to be dropped; the cell got
	// its best-ranked candidate unconditionally.
	RelaxAll
)

func (r Relaxation) String() string {
	switch r {
	case RelaxNone:
		return "none"
	case RelaxSpacing:
		return "spacing"
	case RelaxAll:
		return "all"
	default:
		return fmt.Sprintf("Relaxation(%d)", int(r))
	}
}

// FitResult reports the fitter's per-cell relaxation diagnostics. The cell
// assignments themselves live on the grid.
type FitResult struct {
	// Relaxed maps each cell's linear index to the fallback used for it.
	Relaxed []Relaxation
	// SpacingRelaxed and CapRelaxed count cells per fallback kind.
	SpacingRelaxed int
	CapRelaxed     int
}

// fitContext owns all mutable state of the fit stage: the per-candidate
// placement counters and the neighborhood lookup over already-assigned
// cells. Nothing outside Fit touches it.
type fitContext struct {
	pool    *Pool
	grid    *Grid
	spacing int
	cap     int
}

// Fit walks the cells in row-major order and assigns each its best-ranked
// admissible candidate. A candidate is admissible if it is under the repeat
// cap and no assigned cell within Chebyshev radius spacing already holds it.
// Assignment is one-shot with no backtracking.
//
// The ranked list is finite, so the fallback policy is explicit: if no
// candidate passes both checks, the spacing check is relaxed first; if the
// repeat cap still blocks every candidate, the cell takes its rank head
// unconditionally. The relaxation used is recorded per cell.
//
// The context is checked between cells; on cancellation the partially fitted
// grid must be discarded.
func Fit(ctx context.Context, pool *Pool, grid *Grid, ranking Ranking, repeatCap, spacing int) (*FitResult, error) {
	fc := &fitContext{pool: pool, grid: grid, spacing: spacing, cap: repeatCap}
	result := &FitResult{Relaxed: make([]Relaxation, len(grid.Cells))}

	for _, cell := range grid.Cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, relax := fc.pick(cell, ranking[cell.Index])
		cell.CandidateID = id
		pool.Candidates[id].PlacedCount++

		result.Relaxed[cell.Index] = relax
		switch relax {
		case RelaxSpacing:
			result.SpacingRelaxed++
		case RelaxAll:
			result.CapRelaxed++
		}
	}
	return result, nil
}

// pick returns the candidate for one cell together with the relaxation that
// was needed to find it.
func (fc *fitContext) pick(cell *Cell, ranked []RankEntry) (int, Relaxation) {
	for _, entry := range ranked {
		if fc.underCap(entry.CandidateID) && !fc.seenNearby(cell, entry.CandidateID) {
			return entry.CandidateID, RelaxNone
		}
	}
	for _, entry := range ranked {
		if fc.underCap(entry.CandidateID) {
			return entry.CandidateID, RelaxSpacing
		}
	}
	return ranked[0].CandidateID, RelaxAll
}

func (fc *fitContext) underCap(id int) bool {
	return fc.pool.Candidates[id].PlacedCount < fc.cap
}

// seenNearby reports whether any already-assigned cell within the spacing
// window around cell holds the candidate. The window is clipped to the grid
// bounds in grid coordinates, so it never wraps across rows.
func (fc *fitContext) seenNearby(cell *Cell, id int) bool {
	minRow := max(cell.Row-fc.spacing, 0)
	maxRow := min(cell.Row+fc.spacing, fc.grid.Rows-1)
	minCol := max(cell.Col-fc.spacing, 0)
	maxCol := min(cell.Col+fc.spacing, fc.grid.Cols-1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if fc.grid.CellAt(row, col).CandidateID == id {
				return true
			}
		}
	}
	return false
}
