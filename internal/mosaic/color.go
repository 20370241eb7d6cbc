package mosaic

import (
	"image"
	"math"
)

// Color is a color summary with float64 channels on the 0-255 scale. Targets
// and candidate weights keep full precision so the rank metric is not
// affected by byte truncation.
type Color struct {
	R, G, B float64
}

// rmsRegion computes the per-channel root-mean-square average over the pixels
// of img inside r. The rectangle must lie within the image bounds and be
// non-empty. RMS of a constant region equals the constant.
func rmsRegion(img *image.RGBA, r image.Rectangle) Color {
	var sumR, sumG, sumB float64
	count := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			pr := float64(img.Pix[i])
			pg := float64(img.Pix[i+1])
			pb := float64(img.Pix[i+2])
			sumR += pr * pr
			sumG += pg * pg
			sumB += pb * pb
			count++
			i += 4
		}
	}
	if count == 0 {
		return Color{}
	}
	n := float64(count)
	return Color{
		R: math.Sqrt(sumR / n),
		G: math.Sqrt(sumG / n),
		B: math.Sqrt(sumB / n),
	}
}

// rankDistance is the scalar the ranker orders candidates by: the absolute
// value of the summed signed channel differences. Not a Euclidean distance;
// opposing channel errors cancel.
func rankDistance(cand, target Color) float64 {
	return math.Abs((cand.R - target.R) + (cand.G - target.G) + (cand.B - target.B))
}
