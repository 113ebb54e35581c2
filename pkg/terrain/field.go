package terrain

import "math"

// Band values. A raw value inside any contour interval is drawn as a contour
// line; everything else is open ground.
const (
	BandContour uint8 = 225
	BandOpen    uint8 = 255
)

// Field generation defaults.
const (
	DefaultOctaves     = 9
	DefaultPersistence = 0.45
	DefaultIncrement   = 0.002
)

// contourBands are the half-open [lo, hi) intervals of raw noise*255 that
// produce a contour. Several overlap or run past 255; they are kept as drawn.
var contourBands = [...][2]float64{
	{220, 255},
	{200, 223},
	{250, 273},
	{150, 153},
	{100, 103},
	{90, 93},
	{75, 88},
	{60, 63},
	{40, 43},
}

// Band classifies a raw value already scaled to [0, 255].
func Band(v float64) uint8 {
	for _, b := range contourBands {
		if v >= b[0] && v < b[1] {
			return BandContour
		}
	}
	return BandOpen
}

// Field is the banded height field. Only the two jitter channels read by
// site classification are kept; the band itself is folded into them.
type Field struct {
	Width, Height int
	g, b          []uint8
}

// Generate samples noise at (x*inc, y*inc) for every grid coordinate and
// derives the G and B channels from its band.
func Generate(width, height int, noise Noise, inc float64) *Field {
	f := &Field{
		Width:  width,
		Height: height,
		g:      make([]uint8, width*height),
		b:      make([]uint8, width*height),
	}

	yoff := 0.0
	for y := 0; y < height; y++ {
		xoff := 0.0
		for x := 0; x < width; x++ {
			i := y*width + x
			r := noise.At(xoff, yoff) * 255
			fine := noise.At(xoff*10, yoff*10)

			if band := Band(r); band == BandContour {
				f.g[i] = pixel(float64(band) - r)
				f.b[i] = pixel(float64(band) - fine*255)
			} else {
				f.g[i] = 255
				f.b[i] = pixel(255 - fine*50)
			}
			xoff += inc
		}
		yoff += inc
	}
	return f
}

// Channels returns the G and B values at a grid coordinate. Coordinates
// outside the grid are clamped to its edge.
func (f *Field) Channels(x, y int) (g, b float64) {
	if f.Width == 0 || f.Height == 0 {
		return 0, 0
	}
	x = min(max(x, 0), f.Width-1)
	y = min(max(y, 0), f.Height-1)
	i := y*f.Width + x
	return float64(f.g[i]), float64(f.b[i])
}

// pixel stores v the way an 8-bit clamped pixel buffer would.
func pixel(v float64) uint8 {
	v = math.RoundToEven(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
