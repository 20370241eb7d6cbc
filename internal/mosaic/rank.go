package mosaic

import (
	"context"
	"sort"
	"sync"
)

// RankEntry pairs a candidate with its distance to one cell's target color.
type RankEntry struct {
	CandidateID int
	Score       float64
}

// Ranking holds one ordered candidate list per cell, indexed by the cell's
// linear index. Produced by RankCells, consumed once by Fit.
type Ranking [][]RankEntry

// RankCells orders every candidate for every cell by rankDistance, ascending,
// ties broken by ascending candidate id so runs are deterministic.
//
// This is the dominant cost for large pools (cells × candidates) but each
// cell's ranking is independent, so cells are ranked concurrently. The
// context is checked between cells; a cancelled context returns ctx.Err()
// and the partial ranking must be discarded.
func RankCells(ctx context.Context, pool *Pool, grid *Grid, workers int) (Ranking, error) {
	if workers < 1 {
		workers = 1
	}

	ranking := make(Ranking, len(grid.Cells))

	jobs := make(chan *Cell, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cell := range jobs {
				ranking[cell.Index] = rankCell(pool, cell)
			}
		}()
	}

	var err error
	for _, cell := range grid.Cells {
		if err = ctx.Err(); err != nil {
			break
		}
		jobs <- cell
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return ranking, nil
}

func rankCell(pool *Pool, cell *Cell) []RankEntry {
	entries := make([]RankEntry, len(pool.Candidates))
	for i, cand := range pool.Candidates {
		entries[i] = RankEntry{
			CandidateID: cand.ID,
			Score:       rankDistance(cand.AverageColor, cell.Target),
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].CandidateID < entries[j].CandidateID
	})
	return entries
}
