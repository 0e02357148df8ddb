package landscape

import (
	"errors"
	"fmt"
	"math"
)

// ErrDeltaRange is returned when a re-derived delta does not fit in a signed byte.
var ErrDeltaRange = errors.New("delta out of range")

// Encoder re-derives fragments from the canonical elevations of a Grid.
type Encoder struct {
	Grid *Grid
}

// Encode returns the fragment of cell c as seen by the grid.
//
// Every sample is quantized to the nearest integer raw elevation before
// differencing, and the quantized elevation of local sample (0, 0) becomes the
// new offset. Neighbouring fragments therefore decode to the same value at
// every shared sample, at the cost of dropping fractional source offsets.
// Encoding stops at the first delta outside [-128, 127] and returns no fragment.
func (e *Encoder) Encode(c CellCoord) (Fragment, error) {
	units := e.Grid.Units()
	if err := units.CheckCell(c); err != nil {
		return Fragment{}, err
	}
	samples := units.Samples()
	origin := c.Origin(units.CellSize)

	raw := func(ix, iy int) float64 {
		value, _ := e.Grid.Get(origin.Add(ix, iy))
		return math.Round(units.Raw(value))
	}

	offset := raw(0, 0)
	lastPixel, lastRow := offset, offset
	deltas := make([]int8, 0, units.FragmentLen())

	for iy := 0; iy < samples; iy++ {
		for ix := 0; ix < samples; ix++ {
			elevation := raw(ix, iy)
			var delta float64
			if ix == 0 {
				delta = elevation - lastRow
				lastRow = elevation
				lastPixel = elevation
			} else {
				delta = elevation - lastPixel
				lastPixel = elevation
			}

			if delta < math.MinInt8 || delta > math.MaxInt8 {
				return Fragment{}, fmt.Errorf("%w: cell %s sample (%d, %d): delta %v not in [%d, %d]",
					ErrDeltaRange, c, ix, iy, delta, math.MinInt8, math.MaxInt8)
			}
			deltas = append(deltas, int8(delta))
		}
	}

	return Fragment{Cell: c, Offset: float32(offset), Deltas: deltas}, nil
}
