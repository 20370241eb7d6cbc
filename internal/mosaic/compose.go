package mosaic

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/aclouie89/photomosaic/internal/imageio"
)

// ComposeOptions are the compositor's knobs, split from Config so the stage
// can be tested without a full pipeline configuration.
type ComposeOptions struct {
	// Filter blends each tile's dominant target channel toward the cell's
	// target color by Percent.
	Filter  bool
	Percent float64
	// ScaleTiles resizes tiles to the cell size instead of cropping.
	ScaleTiles bool
	Workers    int
}

// Compose copies every assigned candidate's pixels into the final canvas.
// Cell regions are disjoint by construction, so cells are composited
// concurrently and order does not matter.
func Compose(pool *Pool, grid *Grid, cache *imageio.Cache, opts ComposeOptions) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, grid.CanvasWidth(), grid.CanvasHeight()))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan *Cell, workers)
	errs := make(chan error, len(grid.Cells))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cell := range jobs {
				errs <- composeCell(canvas, pool, grid, cell, cache, opts)
			}
		}()
	}

	for _, cell := range grid.Cells {
		jobs <- cell
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return canvas, nil
}

func composeCell(canvas *image.RGBA, pool *Pool, grid *Grid, cell *Cell, cache *imageio.Cache, opts ComposeOptions) error {
	cand := pool.Candidates[cell.CandidateID]
	img, err := cache.Load(cand.Path)
	if err != nil {
		return &LoadError{Path: cand.Path, Err: err}
	}

	var tile *image.RGBA
	if opts.ScaleTiles {
		tile = clone.AsRGBA(imaging.Resize(img, grid.CellWidth, grid.CellHeight, imaging.Lanczos))
	} else {
		b := img.Bounds()
		crop := image.Rect(b.Min.X, b.Min.Y, b.Min.X+grid.CellWidth, b.Min.Y+grid.CellHeight)
		tile = clone.AsRGBA(imaging.Crop(img, crop))
	}

	if opts.Filter && opts.Percent > 0 {
		filterTile(tile, cell.Target, opts.Percent)
	}

	dst := image.Rect(cell.StartX, cell.StartY, cell.StartX+grid.CellWidth, cell.StartY+grid.CellHeight)
	draw.Draw(canvas, dst, tile, tile.Bounds().Min, draw.Src)
	return nil
}

// filterTile blends the cell's dominant target channel toward the target in
// place. The dominant channel is the one with the strictly largest target
// value; if no channel strictly dominates the pixel passes through
// unchanged. Other channels always pass through.
func filterTile(tile *image.RGBA, target Color, percent float64) {
	var ch int
	switch {
	case target.R > target.G && target.R > target.B:
		ch = 0
	case target.G > target.R && target.G > target.B:
		ch = 1
	case target.B > target.R && target.B > target.G:
		ch = 2
	default:
		return
	}
	want := [3]float64{target.R, target.G, target.B}[ch]

	b := tile.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := tile.PixOffset(b.Min.X, y) + ch
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(tile.Pix[i])
			v += percent * (want - v)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			tile.Pix[i] = uint8(v)
			i += 4
		}
	}
}

// WeightMap renders the diagnostic image in which every cell is a flat block
// of its sampled target color. Useful for checking grid geometry and target
// sampling without running fit.
func WeightMap(grid *Grid) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, grid.CanvasWidth(), grid.CanvasHeight()))
	for _, cell := range grid.Cells {
		c := color.RGBA{
			R: uint8(cell.Target.R),
			G: uint8(cell.Target.G),
			B: uint8(cell.Target.B),
			A: 255,
		}
		dst := image.Rect(cell.StartX, cell.StartY, cell.StartX+grid.CellWidth, cell.StartY+grid.CellHeight)
		draw.Draw(canvas, dst, &image.Uniform{C: c}, image.Point{}, draw.Src)
	}
	return canvas
}
