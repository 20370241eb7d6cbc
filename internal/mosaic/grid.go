package mosaic

import (
	"image"
	"math"
)

// unassigned is the sentinel for a cell with no tile yet.
const unassigned = -1

// Cell is one grid region of the output canvas. TargetColor is sampled once
// from the reference image; CandidateID is written exactly once by the fit
// stage.
type Cell struct {
	Index       int // row-major linear index
	Row, Col    int
	StartX      int // canvas origin
	StartY      int
	Target      Color
	CandidateID int
}

// Grid holds the cell geometry of a mosaic. Rows and Cols are always equal;
// the canvas measures CellWidth*Cols × CellHeight*Rows pixels. Immutable once
// built (the fit stage mutates cell assignments, not geometry).
type Grid struct {
	Rows, Cols            int
	CellWidth, CellHeight int
	Cells                 []*Cell
}

// CanvasWidth returns the pixel width of the output canvas.
func (g *Grid) CanvasWidth() int { return g.CellWidth * g.Cols }

// CanvasHeight returns the pixel height of the output canvas.
func (g *Grid) CanvasHeight() int { return g.CellHeight * g.Rows }

// CellAt returns the cell in a given row and column.
func (g *Grid) CellAt(row, col int) *Cell {
	return g.Cells[row*g.Cols+col]
}

// cellSize searches for a cell pixel size whose aspect ratio is within
// tolerance of the reference ratio, starting from the pool minimums and
// shrinking one dimension. Every candidate can supply the result by cropping.
//
// If the candidate ratio is wider than the reference's the width shrinks,
// otherwise the height. The first size within tolerance wins; reaching the
// floor fails the run.
func cellSize(refW, refH, minW, minH int, tolerance float64) (int, int, error) {
	refRatio := float64(refW) / float64(refH)
	candRatio := float64(minW) / float64(minH)

	if candRatio < refRatio {
		for newH := minH; newH > 0; newH-- {
			if math.Abs(refRatio-float64(minW)/float64(newH)) <= tolerance {
				return minW, newH, nil
			}
			if newH <= minCellSize {
				break
			}
		}
	} else {
		for newW := minW; newW > 0; newW-- {
			if math.Abs(refRatio-float64(newW)/float64(minH)) <= tolerance {
				return newW, minH, nil
			}
			if newW <= minCellSize {
				break
			}
		}
	}
	return 0, 0, &GridError{RefRatio: refRatio, Tolerance: tolerance, Floor: minCellSize}
}

// BuildGrid derives the cell size from the reference dimensions and the pool
// minimums, then samples every cell's target color from ref.
//
// Target sampling strides the reference in steps of refW/N and refH/N;
// integer division truncates, so up to a stride of pixels at the right and
// bottom edges is cropped out of the calculation. Each cell's target is the
// per-channel RMS average over a CellWidth×CellHeight window at its stride
// origin, clipped to the scaled bounds.
//
// On a failed cell size search the returned grid still carries the pool
// minimums as its cell size (the weigh stage is not gated on the sizing
// check) but has no cells, and the GridError is returned alongside it.
func BuildGrid(ref *image.RGBA, pool *Pool, side int, tolerance float64) (*Grid, error) {
	refW := ref.Bounds().Dx()
	refH := ref.Bounds().Dy()

	grid := &Grid{Rows: side, Cols: side}

	cellW, cellH, err := cellSize(refW, refH, pool.MinWidth, pool.MinHeight, tolerance)
	if err != nil {
		grid.CellWidth = pool.MinWidth
		grid.CellHeight = pool.MinHeight
		return grid, err
	}
	grid.CellWidth = cellW
	grid.CellHeight = cellH

	strideX := refW / side
	strideY := refH / side
	// Remainder pixels past side*stride are cropped from the sampling, not
	// an error.
	scaledW := strideX * side
	scaledH := strideY * side

	bounds := ref.Bounds()
	grid.Cells = make([]*Cell, 0, side*side)
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			sampleX := bounds.Min.X + col*strideX
			sampleY := bounds.Min.Y + row*strideY
			window := image.Rect(
				sampleX, sampleY,
				min(sampleX+cellW, bounds.Min.X+scaledW),
				min(sampleY+cellH, bounds.Min.Y+scaledH),
			)
			grid.Cells = append(grid.Cells, &Cell{
				Index:       row*side + col,
				Row:         row,
				Col:         col,
				StartX:      col * cellW,
				StartY:      row * cellH,
				Target:      rmsRegion(ref, window),
				CandidateID: unassigned,
			})
		}
	}
	return grid, nil
}
