package mosaic

import (
	"context"
	"image"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aclouie89/photomosaic/internal/imageio"
)

// Result is everything a successful run produces besides the output file.
type Result struct {
	Grid   *Grid
	Fit    *FitResult
	Report *Report
	Canvas *image.RGBA
}

// Generate runs the full pipeline:
//
//	LOAD → GRID → WEIGH → (grid check) → RANK → FIT → COMPOSITE → DONE
//
// Any stage failure is fatal; no stage is retried and no output file is
// written on failure. The weigh stage is deliberately not gated on the grid
// sizing check — it only needs the cell dimensions, which the grid builder
// always provides — so the check sits after it, matching the stage order
// above.
//
// The output artifact (and the optional weight map) is written only after
// every stage has succeeded.
func Generate(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cache := imageio.NewCache()
	start := time.Now()

	// LOAD
	stage := time.Now()
	pool, err := LoadPool(cfg.TileDir, cfg.SkipBadTiles)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"tiles":   len(pool.Candidates),
		"minSize": image.Pt(pool.MinWidth, pool.MinHeight),
		"took":    time.Since(stage),
	}).Info("Loaded candidate pool")

	// GRID
	stage = time.Now()
	ref, err := cache.Load(cfg.RefPath)
	if err != nil {
		return nil, &LoadError{Path: cfg.RefPath, Err: err}
	}
	grid, gridErr := BuildGrid(ref, pool, cfg.GridSide, cfg.AspectTolerance)
	log.WithFields(log.Fields{
		"cells":  cfg.GridSide * cfg.GridSide,
		"cell":   image.Pt(grid.CellWidth, grid.CellHeight),
		"canvas": image.Pt(grid.CanvasWidth(), grid.CanvasHeight()),
		"took":   time.Since(stage),
	}).Info("Built mosaic grid")

	// WEIGH
	stage = time.Now()
	if err := WeighCandidates(pool, grid, cache, cfg.ScaleTiles, cfg.Workers); err != nil {
		return nil, err
	}
	log.WithField("took", time.Since(stage)).Info("Weighed candidates")

	// The grid sizing check aborts the run here, before ranking.
	if gridErr != nil {
		return nil, gridErr
	}

	// RANK
	stage = time.Now()
	ranking, err := RankCells(ctx, pool, grid, cfg.Workers)
	if err != nil {
		return nil, err
	}
	log.WithField("took", time.Since(stage)).Info("Ranked candidates per cell")

	// FIT
	stage = time.Now()
	fit, err := Fit(ctx, pool, grid, ranking, cfg.RepeatCap, cfg.Spacing)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"spacingRelaxed": fit.SpacingRelaxed,
		"capRelaxed":     fit.CapRelaxed,
		"took":           time.Since(stage),
	}).Info("Fitted tiles")

	report := BuildReport(pool, grid, fit)
	log.WithFields(log.Fields{
		"distinctTiles": report.DistinctTiles,
		"meanDeltaE":    report.MeanDeltaE,
		"maxDeltaE":     report.MaxDeltaE,
	}).Info("Match quality")

	// COMPOSITE
	stage = time.Now()
	canvas, err := Compose(pool, grid, cache, ComposeOptions{
		Filter:     cfg.FilterEnabled,
		Percent:    cfg.FilterPercent,
		ScaleTiles: cfg.ScaleTiles,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return nil, err
	}
	log.WithField("took", time.Since(stage)).Info("Composited mosaic")

	if cfg.WeightMapPath != "" {
		if err := imageio.Save(WeightMap(grid), cfg.WeightMapPath); err != nil {
			return nil, err
		}
		log.WithField("path", cfg.WeightMapPath).Info("Wrote weight map")
	}

	if err := imageio.Save(canvas, cfg.OutPath); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"path": cfg.OutPath,
		"took": time.Since(start),
	}).Info("Mosaic complete")

	return &Result{Grid: grid, Fit: fit, Report: report, Canvas: canvas}, nil
}
