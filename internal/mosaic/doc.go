// Package mosaic implements the photomosaic construction engine.
//
// A mosaic run rebuilds a reference image as an N×N grid of cells, each cell
// filled by one tile image from a candidate pool. The pipeline is strictly
// sequential:
//
//	LOAD      enumerate the tile pool, record dimensions and pool minimums
//	GRID      derive the cell pixel size from aspect-ratio constraints and
//	          sample each cell's target color from the reference image
//	WEIGH     compute each candidate's representative average color
//	RANK      order all candidates per cell by color distance to the target
//	FIT       greedily assign tiles under repeat and spacing constraints
//	COMPOSITE copy assigned tiles into the canvas, optionally color-blended
//
// Each decoded color summary is a per-channel root-mean-square average
// rather than a plain mean; RMS avoids the darkening bias simple averaging
// introduces on high-contrast regions.
//
// # Determinism
//
// Candidate ids are assigned in lexicographic path order, ranking ties break
// by ascending id, and fitting walks cells in row-major order, so two runs
// over identical inputs produce identical mosaics.
//
// # Concurrency
//
// The weigh, rank, and composite stages run on worker pools; each unit of
// work reads shared immutable data and writes a disjoint result slot. The
// fit stage is a single writer: repeat counters and the neighborhood lookup
// are shared across cells, so cells are processed sequentially. Rank and fit
// check the context between cells so long runs can be cancelled cleanly.
package mosaic
