package mosaic

import "testing"

func TestBuildReport_PerfectMatch(t *testing.T) {
	pool := poolWithColors(Color{10, 20, 30}, Color{200, 100, 50})
	grid := gridWithTargets(1, Color{10, 20, 30}, Color{200, 100, 50})
	grid.Cells[0].CandidateID = 0
	grid.Cells[1].CandidateID = 1

	report := BuildReport(pool, grid, &FitResult{})

	if report.Cells != 2 {
		t.Errorf("Cells: got %d, want 2", report.Cells)
	}
	if report.DistinctTiles != 2 {
		t.Errorf("DistinctTiles: got %d, want 2", report.DistinctTiles)
	}
	if report.MeanDeltaE != 0 || report.MaxDeltaE != 0 {
		t.Errorf("exact matches must report zero error, got mean=%g max=%g",
			report.MeanDeltaE, report.MaxDeltaE)
	}
}

func TestBuildReport_CountsRepeats(t *testing.T) {
	pool := poolWithColors(Color{0, 0, 0}, Color{255, 255, 255})
	grid := gridWithTargets(2,
		Color{0, 0, 0}, Color{0, 0, 0},
		Color{0, 0, 0}, Color{255, 255, 255})
	for _, cell := range grid.Cells[:3] {
		cell.CandidateID = 0
	}
	grid.Cells[3].CandidateID = 1

	report := BuildReport(pool, grid, &FitResult{SpacingRelaxed: 2, CapRelaxed: 1})

	if report.DistinctTiles != 2 {
		t.Errorf("DistinctTiles: got %d, want 2", report.DistinctTiles)
	}
	if report.SpacingRelaxed != 2 || report.CapRelaxed != 1 {
		t.Errorf("relaxation counts lost: %+v", report)
	}
}

func TestBuildReport_MismatchHasPositiveError(t *testing.T) {
	pool := poolWithColors(Color{255, 255, 255})
	grid := gridWithTargets(1, Color{0, 0, 0}, Color{0, 0, 0})
	for _, cell := range grid.Cells {
		cell.CandidateID = 0
	}

	report := BuildReport(pool, grid, &FitResult{})

	if report.MeanDeltaE <= 0 {
		t.Errorf("black cells under a white tile must report error, got %g", report.MeanDeltaE)
	}
	if report.MaxDeltaE < report.MeanDeltaE {
		t.Errorf("max %g below mean %g", report.MaxDeltaE, report.MeanDeltaE)
	}
	if report.StdDevDeltaE != 0 {
		t.Errorf("identical deltas must have zero spread, got %g", report.StdDevDeltaE)
	}
}
