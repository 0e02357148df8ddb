package landscape

import (
	"errors"
	"fmt"
	"math"
)

// ErrFragmentLength is returned when a fragment does not hold exactly (N+1)² deltas.
var ErrFragmentLength = errors.New("invalid fragment length")

// Fragment is the compressed heightmap payload of one Landscape record.
// Deltas are row-major: the first delta of a row is relative to the first
// sample of the previous row (or to Offset), every other delta to its left
// neighbour.
type Fragment struct {
	Cell   CellCoord
	Offset float32
	Deltas []int8
}

// Conflict records a shared sample that was overwritten with a different value.
type Conflict struct {
	Vertex   Vertex
	Cell     CellCoord // record that performed the overwrite
	Previous float64
	Value    float64
}

// Decoder writes fragments into a Grid as canonical elevations.
type Decoder struct {
	Grid *Grid

	// Tolerance is the largest canonical difference not reported as a Conflict.
	Tolerance float64
	// OnConflict, if set, is called for every disagreeing overwrite.
	OnConflict func(Conflict)
}

// Decode expands f into absolute elevations and stores them in the grid.
// Shared edge samples are overwritten; the source fragment is not modified.
func (d *Decoder) Decode(f Fragment) error {
	units := d.Grid.Units()
	if len(f.Deltas) != units.FragmentLen() {
		return fmt.Errorf("%w: cell %s: expected %d deltas, got %d",
			ErrFragmentLength, f.Cell, units.FragmentLen(), len(f.Deltas))
	}

	if err := units.CheckCell(f.Cell); err != nil {
		return err
	}

	samples := units.Samples()
	origin := f.Cell.Origin(units.CellSize)
	rowAnchor := float64(f.Offset)
	var rowValue float64

	for iy := 0; iy < samples; iy++ {
		for ix := 0; ix < samples; ix++ {
			delta := float64(f.Deltas[ix+iy*samples])
			if ix == 0 {
				rowAnchor += delta
				rowValue = rowAnchor
			} else {
				rowValue += delta
			}

			v := origin.Add(ix, iy)
			value := units.Canonical(rowValue)
			previous, written := d.Grid.Set(v, value)
			if written && d.OnConflict != nil && math.Abs(previous-value) > d.Tolerance {
				d.OnConflict(Conflict{Vertex: v, Cell: f.Cell, Previous: previous, Value: value})
			}
		}
	}

	return nil
}
