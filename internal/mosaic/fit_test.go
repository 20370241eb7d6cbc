package mosaic

import (
	"context"
	"reflect"
	"testing"
)

func mustRank(t *testing.T, pool *Pool, grid *Grid) Ranking {
	t.Helper()
	ranking, err := RankCells(context.Background(), pool, grid, 1)
	if err != nil {
		t.Fatalf("RankCells failed: %v", err)
	}
	return ranking
}

func chebyshev(a, b *Cell) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

func TestFit_Coverage(t *testing.T) {
	pool := poolWithColors(Color{10, 10, 10}, Color{50, 50, 50}, Color{90, 90, 90})
	grid := gridWithTargets(3,
		Color{10, 10, 10}, Color{20, 20, 20}, Color{30, 30, 30},
		Color{40, 40, 40}, Color{50, 50, 50}, Color{60, 60, 60},
		Color{70, 70, 70}, Color{80, 80, 80}, Color{90, 90, 90},
	)

	_, err := Fit(context.Background(), pool, grid, mustRank(t, pool, grid), 5, 1)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for _, cell := range grid.Cells {
		if cell.CandidateID == unassigned {
			t.Errorf("cell %d left unassigned", cell.Index)
		}
	}
}

func TestFit_PerfectBijection(t *testing.T) {
	// 2x2 grid, 4 candidates, each candidate exactly matching one cell:
	// with repeatCap 1 and spacing 0 a 1:1 assignment is always feasible
	// and no relaxation may fire.
	pool := poolWithColors(
		Color{10, 0, 0}, Color{20, 0, 0},
		Color{30, 0, 0}, Color{40, 0, 0},
	)
	grid := gridWithTargets(2,
		Color{10, 0, 0}, Color{20, 0, 0},
		Color{30, 0, 0}, Color{40, 0, 0},
	)

	result, err := Fit(context.Background(), pool, grid, mustRank(t, pool, grid), 1, 0)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if result.SpacingRelaxed != 0 || result.CapRelaxed != 0 {
		t.Errorf("no relaxation expected, got spacing=%d cap=%d", result.SpacingRelaxed, result.CapRelaxed)
	}

	seen := make(map[int]bool)
	for i, cell := range grid.Cells {
		if cell.CandidateID != i {
			t.Errorf("cell %d: got candidate %d, want %d", i, cell.CandidateID, i)
		}
		if seen[cell.CandidateID] {
			t.Errorf("candidate %d placed twice", cell.CandidateID)
		}
		seen[cell.CandidateID] = true
	}
}

func TestFit_RepeatBound(t *testing.T) {
	// 9 cells but only 2 candidates with cap 5: the cap holds without any
	// relaxation (2*5 >= 9).
	pool := poolWithColors(Color{0, 0, 0}, Color{255, 255, 255})
	targets := make([]Color, 9)
	for i := range targets {
		targets[i] = Color{float64(i * 30), float64(i * 30), float64(i * 30)}
	}
	grid := gridWithTargets(3, targets...)

	result, err := Fit(context.Background(), pool, grid, mustRank(t, pool, grid), 5, 0)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for _, cand := range pool.Candidates {
		if cand.PlacedCount > 5 && result.CapRelaxed == 0 {
			t.Errorf("candidate %d placed %d times over cap without relaxation flag", cand.ID, cand.PlacedCount)
		}
	}
}

func TestFit_CapRelaxationFlagged(t *testing.T) {
	// One candidate, four cells, cap 1: three cells can only be filled by
	// breaking the cap, and that must be flagged, never silent.
	pool := poolWithColors(Color{100, 100, 100})
	grid := gridWithTargets(2, Color{}, Color{}, Color{}, Color{})

	result, err := Fit(context.Background(), pool, grid, mustRank(t, pool, grid), 1, 0)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if pool.Candidates[0].PlacedCount != 4 {
		t.Errorf("PlacedCount: got %d, want 4", pool.Candidates[0].PlacedCount)
	}
	if result.CapRelaxed != 3 {
		t.Errorf("CapRelaxed: got %d, want 3", result.CapRelaxed)
	}
	if result.Relaxed[0] != RelaxNone {
		t.Errorf("first cell should not relax, got %v", result.Relaxed[0])
	}
	for i := 1; i < 4; i++ {
		if result.Relaxed[i] != RelaxAll {
			t.Errorf("cell %d: got relaxation %v, want %v", i, result.Relaxed[i], RelaxAll)
		}
	}
}

func TestFit_SpacingBound(t *testing.T) {
	// Plenty of candidates: the spacing bound must hold with no relaxation,
	// i.e. no two cells within Chebyshev distance 1 share a candidate.
	colors := make([]Color, 16)
	for i := range colors {
		colors[i] = Color{float64(i * 16), 0, 0}
	}
	pool := poolWithColors(colors...)

	targets := make([]Color, 16)
	for i := range targets {
		targets[i] = Color{float64((i * 7) % 255), 0, 0}
	}
	grid := gridWithTargets(4, targets...)

	result, err := Fit(context.Background(), pool, grid, mustRank(t, pool, grid), 2, 1)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if result.SpacingRelaxed != 0 {
		t.Fatalf("expected no spacing relaxation, got %d", result.SpacingRelaxed)
	}

	for _, a := range grid.Cells {
		for _, b := range grid.Cells {
			if a.Index >= b.Index {
				continue
			}
			if chebyshev(a, b) <= 1 && a.CandidateID == b.CandidateID {
				t.Errorf("cells %d and %d within spacing share candidate %d", a.Index, b.Index, a.CandidateID)
			}
		}
	}
}

func TestFit_SpacingRelaxationBeforeCap(t *testing.T) {
	// Two candidates with cap 4 on a 2x2 grid with spacing 1: every cell is
	// within distance 1 of every other, so from the third cell on the
	// spacing check cannot be satisfied but the cap still can. The ladder
	// must relax spacing only.
	pool := poolWithColors(Color{0, 0, 0}, Color{255, 255, 255})
	grid := gridWithTargets(2, Color{0, 0, 0}, Color{255, 255, 255}, Color{0, 0, 0}, Color{255, 255, 255})

	result, err := Fit(context.Background(), pool, grid, mustRank(t, pool, grid), 4, 1)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if result.SpacingRelaxed == 0 {
		t.Error("expected spacing relaxation to fire")
	}
	if result.CapRelaxed != 0 {
		t.Errorf("cap relaxation must not fire while the cap is satisfiable, got %d", result.CapRelaxed)
	}
}

func TestFit_Deterministic(t *testing.T) {
	colors := make([]Color, 8)
	for i := range colors {
		colors[i] = Color{float64(i * 31 % 255), float64(i * 17 % 255), 0}
	}
	targets := make([]Color, 9)
	for i := range targets {
		targets[i] = Color{float64(i * 29 % 255), float64(i * 13 % 255), 0}
	}

	run := func() []int {
		pool := poolWithColors(colors...)
		grid := gridWithTargets(3, targets...)
		_, err := Fit(context.Background(), pool, grid, mustRank(t, pool, grid), 2, 1)
		if err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		assigned := make([]int, len(grid.Cells))
		for i, cell := range grid.Cells {
			assigned[i] = cell.CandidateID
		}
		return assigned
	}

	if first, second := run(), run(); !reflect.DeepEqual(first, second) {
		t.Errorf("assignments differ between runs: %v vs %v", first, second)
	}
}

func TestFit_Cancelled(t *testing.T) {
	pool := poolWithColors(Color{1, 1, 1})
	grid := gridWithTargets(2, Color{}, Color{}, Color{}, Color{})
	ranking := mustRank(t, pool, grid)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Fit(ctx, pool, grid, ranking, 1, 0); err == nil {
		t.Error("expected context error, got nil")
	}
}

func TestRelaxationString(t *testing.T) {
	tests := []struct {
		r    Relaxation
		want string
	}{
		{RelaxNone, "none"},
		{RelaxSpacing, "spacing"},
		{RelaxAll, "all"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String: got %q, want %q", got, tt.want)
		}
	}
}
