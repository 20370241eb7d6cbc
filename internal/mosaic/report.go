package mosaic

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// Report summarizes how well the fitted mosaic matches the reference. The
// per-cell error is the CIE-Lab distance between the cell's target color and
// its assigned candidate's average color, which tracks perceived mismatch
// better than the rank metric does.
type Report struct {
	Cells         int
	DistinctTiles int

	// MeanDeltaE, StdDevDeltaE and MaxDeltaE aggregate the per-cell Lab
	// distances.
	MeanDeltaE   float64
	StdDevDeltaE float64
	MaxDeltaE    float64

	SpacingRelaxed int
	CapRelaxed     int
}

// BuildReport computes match-quality statistics for a fitted grid.
func BuildReport(pool *Pool, grid *Grid, fit *FitResult) *Report {
	deltas := make([]float64, 0, len(grid.Cells))
	used := make(map[int]struct{})

	for _, cell := range grid.Cells {
		cand := pool.Candidates[cell.CandidateID]
		used[cand.ID] = struct{}{}
		deltas = append(deltas, labDistance(cell.Target, cand.AverageColor))
	}

	report := &Report{
		Cells:          len(grid.Cells),
		DistinctTiles:  len(used),
		SpacingRelaxed: fit.SpacingRelaxed,
		CapRelaxed:     fit.CapRelaxed,
	}
	if len(deltas) > 0 {
		report.MeanDeltaE = stat.Mean(deltas, nil)
		if len(deltas) > 1 {
			report.StdDevDeltaE = stat.StdDev(deltas, nil)
		}
		for _, d := range deltas {
			if d > report.MaxDeltaE {
				report.MaxDeltaE = d
			}
		}
	}
	return report
}

func labDistance(a, b Color) float64 {
	ca := colorful.Color{R: a.R / 255, G: a.G / 255, B: a.B / 255}
	cb := colorful.Color{R: b.R / 255, G: b.G / 255, B: b.B / 255}
	return ca.DistanceLab(cb)
}
