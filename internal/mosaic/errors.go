package mosaic

import (
	"errors"
	"fmt"
)

// ErrEmptyPool is returned when the tile directory contains no usable images.
var ErrEmptyPool = errors.New("no usable candidate images found")

// LoadError reports a reference or candidate image that could not be read
// or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// GridError reports that no cell size within the aspect-ratio tolerance could
// be found above the minimum-size floor. The run aborts; a larger tolerance
// or a different tile set is needed.
type GridError struct {
	RefRatio  float64
	Tolerance float64
	Floor     int
}

func (e *GridError) Error() string {
	return fmt.Sprintf("no cell size above %dpx floor within tolerance %g of aspect ratio %.4f",
		e.Floor, e.Tolerance, e.RefRatio)
}
