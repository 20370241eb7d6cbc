package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/aclouie89/photomosaic/internal/mosaic"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg := mosaic.DefaultConfig()

	flag.StringVar(&cfg.RefPath, "ref", "", "reference image to rebuild (required)")
	flag.StringVar(&cfg.OutPath, "out", "mosaic.png", "output image path (.bmp, .png or .jpg)")
	flag.StringVar(&cfg.TileDir, "tiles", "", "directory of candidate tile images (required)")
	flag.IntVar(&cfg.GridSide, "grid", cfg.GridSide, "cells per row and column")
	flag.IntVar(&cfg.RepeatCap, "repeat", cfg.RepeatCap, "max placements per tile")
	flag.IntVar(&cfg.Spacing, "spacing", cfg.Spacing, "min grid distance between repeats of a tile")
	flag.Float64Var(&cfg.AspectTolerance, "tolerance", cfg.AspectTolerance, "aspect ratio tolerance for the cell size search")
	flag.BoolVar(&cfg.FilterEnabled, "filter", false, "blend tiles toward cell target colors")
	flag.Float64Var(&cfg.FilterPercent, "filter-percent", cfg.FilterPercent, "blend strength in [0,1]")
	flag.BoolVar(&cfg.ScaleTiles, "scale", false, "resize tiles to the cell size instead of cropping")
	flag.BoolVar(&cfg.SkipBadTiles, "skip-bad", false, "skip unreadable tiles instead of aborting")
	flag.StringVar(&cfg.WeightMapPath, "weight-map", "", "also write a per-cell target color image to this path")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker count for the parallel stages")
	verbose := flag.Bool("v", false, "verbose (debug) logging")
	version := flag.Bool("version", false, "print version information")
	flag.Parse()

	if *version {
		fmt.Printf("photomosaic %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if cfg.RefPath == "" || cfg.TileDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := mosaic.Generate(ctx, cfg); err != nil {
		switch {
		case errors.Is(err, mosaic.ErrEmptyPool):
			log.WithError(err).Fatal("Load stage failed")
		case isGridErr(err):
			log.WithError(err).Fatal("Grid stage failed")
		case errors.Is(err, context.Canceled):
			log.Fatal("Run cancelled")
		default:
			log.WithError(err).Fatal("Mosaic generation failed")
		}
	}
}

func isGridErr(err error) bool {
	var gridErr *mosaic.GridError
	return errors.As(err, &gridErr)
}
