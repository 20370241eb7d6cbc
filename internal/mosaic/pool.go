package mosaic

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/aclouie89/photomosaic/internal/imageio"
)

// Candidate is one tile image available for placement. Identity is the index
// into the pool slice; the weigher fills AverageColor once, and only the
// fitter mutates PlacedCount (monotonically increasing).
type Candidate struct {
	ID     int
	Path   string
	Width  int
	Height int

	AverageColor Color
	PlacedCount  int
}

// Pool is the candidate tile pool plus the minimum dimensions across all
// tiles. Every tile can supply at least a MinWidth×MinHeight region, which is
// what the grid builder sizes cells against.
type Pool struct {
	Candidates []*Candidate
	MinWidth   int
	MinHeight  int
}

// LoadPool enumerates the tile directory in lexicographic order and records
// each usable image's dimensions. Candidate ids follow enumeration order.
//
// An unreadable file aborts with a LoadError unless skipBad is set, in which
// case it is logged and skipped. Returns ErrEmptyPool if no usable image
// remains.
func LoadPool(dir string, skipBad bool) (*Pool, error) {
	paths, err := imageio.ListImages(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Err: err}
	}

	pool := &Pool{
		MinWidth:  math.MaxInt,
		MinHeight: math.MaxInt,
	}
	for _, path := range paths {
		w, h, err := imageio.Dimensions(path)
		if err != nil {
			if skipBad {
				log.WithError(err).WithField("path", path).Warn("Skipping unreadable tile")
				continue
			}
			return nil, &LoadError{Path: path, Err: err}
		}
		pool.Candidates = append(pool.Candidates, &Candidate{
			ID:     len(pool.Candidates),
			Path:   path,
			Width:  w,
			Height: h,
		})
		if w < pool.MinWidth {
			pool.MinWidth = w
		}
		if h < pool.MinHeight {
			pool.MinHeight = h
		}
	}

	if len(pool.Candidates) == 0 {
		return nil, ErrEmptyPool
	}
	return pool, nil
}
