package mosaic

import (
	"fmt"
	"runtime"
)

// Defaults mirror the values the tool has always shipped with; they work well
// for tile pools in the low thousands.
const (
	DefaultGridSide        = 40
	DefaultRepeatCap       = 5
	DefaultSpacing         = 10
	DefaultAspectTolerance = 0.01
	DefaultFilterPercent   = 0.5

	// minCellSize is the floor for the cell size search. Below this the
	// tiles are too small to carry any detail and the search gives up.
	minCellSize = 20
)

// Config collects every knob the pipeline stages consume. Zero values are not
// usable; start from DefaultConfig and override.
type Config struct {
	// RefPath is the reference image the mosaic reproduces.
	RefPath string
	// OutPath is where the composite image is written. The extension picks
	// the output codec (.bmp, .png, .jpg).
	OutPath string
	// TileDir is the directory of candidate tile images.
	TileDir string

	// GridSide is the number of cells per row and per column.
	GridSide int
	// RepeatCap is the maximum number of times one tile may appear in the
	// whole mosaic before the fitter's fallback ladder kicks in.
	RepeatCap int
	// Spacing is the Chebyshev radius (in grid coordinates) within which a
	// tile must not repeat.
	Spacing int
	// AspectTolerance is the maximum allowed deviation between the
	// reference aspect ratio and the cell aspect ratio.
	AspectTolerance float64

	// FilterEnabled blends each placed tile toward its cell's target color.
	FilterEnabled bool
	// FilterPercent is the blend strength in [0, 1]; only the cell's
	// dominant target channel is blended.
	FilterPercent float64

	// ScaleTiles resizes candidates to the cell size instead of cropping
	// their top-left corner.
	ScaleTiles bool
	// SkipBadTiles skips unreadable candidate images with a warning instead
	// of aborting the run.
	SkipBadTiles bool

	// WeightMapPath, when set, additionally writes a diagnostic image in
	// which every cell is a flat block of its sampled target color.
	WeightMapPath string

	// Workers is the worker count for the parallel stages.
	Workers int
}

// DefaultConfig returns a Config with the standard parameters; paths are left
// empty and must be filled by the caller.
func DefaultConfig() Config {
	return Config{
		GridSide:        DefaultGridSide,
		RepeatCap:       DefaultRepeatCap,
		Spacing:         DefaultSpacing,
		AspectTolerance: DefaultAspectTolerance,
		FilterPercent:   DefaultFilterPercent,
		Workers:         runtime.NumCPU(),
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.RefPath == "" {
		return fmt.Errorf("reference image path must be set")
	}
	if c.OutPath == "" {
		return fmt.Errorf("output path must be set")
	}
	if c.TileDir == "" {
		return fmt.Errorf("tile directory must be set")
	}
	if c.GridSide < 1 {
		return fmt.Errorf("grid side must be >= 1, got %d", c.GridSide)
	}
	if c.RepeatCap < 1 {
		return fmt.Errorf("repeat cap must be >= 1, got %d", c.RepeatCap)
	}
	if c.Spacing < 0 {
		return fmt.Errorf("spacing must be >= 0, got %d", c.Spacing)
	}
	if c.AspectTolerance < 0 {
		return fmt.Errorf("aspect tolerance must be >= 0, got %g", c.AspectTolerance)
	}
	if c.FilterPercent < 0 || c.FilterPercent > 1 {
		return fmt.Errorf("filter percent must be in [0, 1], got %g", c.FilterPercent)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return nil
}
