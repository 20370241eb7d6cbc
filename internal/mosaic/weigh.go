package mosaic

import (
	"image"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/aclouie89/photomosaic/internal/imageio"
)

// WeighCandidates computes every candidate's representative average color:
// the per-channel RMS over the CellWidth×CellHeight region the compositor
// will actually place. Candidates are weighed concurrently; each worker
// writes only its own candidate's AverageColor.
//
// With scaleTiles the candidate is resized to the cell size before weighing,
// so the weight describes the same pixels the compositor will place in that
// mode. Otherwise the top-left crop is weighed.
func WeighCandidates(pool *Pool, grid *Grid, cache *imageio.Cache, scaleTiles bool, workers int) error {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan *Candidate, workers)
	errs := make(chan error, len(pool.Candidates))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				errs <- weighCandidate(cand, grid, cache, scaleTiles)
			}
		}()
	}

	for _, cand := range pool.Candidates {
		jobs <- cand
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func weighCandidate(cand *Candidate, grid *Grid, cache *imageio.Cache, scaleTiles bool) error {
	img, err := cache.Load(cand.Path)
	if err != nil {
		return &LoadError{Path: cand.Path, Err: err}
	}

	var region *image.RGBA
	if scaleTiles {
		region = clone.AsRGBA(imaging.Resize(img, grid.CellWidth, grid.CellHeight, imaging.Lanczos))
	} else {
		region = img
	}
	b := region.Bounds()
	window := image.Rect(b.Min.X, b.Min.Y, b.Min.X+grid.CellWidth, b.Min.Y+grid.CellHeight)
	cand.AverageColor = rmsRegion(region, window.Intersect(b))
	return nil
}
