// Package landscape consolidates the delta-compressed heightmap fragments of
// Landscape records into one seamless world elevation field, and re-derives
// every fragment from that field.
//
// Elevations inside a Grid are kept in canonical units. Fragments (offsets and
// deltas) are expressed in raw units. Units converts between the two.
package landscape

import (
	"errors"
	"fmt"
	"math"
)

// Default unit constants for Morrowind-style land records.
const (
	DefaultCellSize = 64   // elevation squares per cell edge
	DefaultScale    = 8.0  // raw height units per game unit
	DefaultUnit     = 69.5 // game units per meter
)

// Units errors.
var (
	ErrInvalidUnits = errors.New("invalid landscape units")
	ErrCellRange    = errors.New("cell outside addressable grid")
)

// Units describes the cell geometry and the raw/canonical elevation ratio.
type Units struct {
	CellSize int     `yaml:"cell_size"`
	Scale    float64 `yaml:"scale"`
	Unit     float64 `yaml:"unit"`
}

// DefaultUnits returns the units used by the stock game data.
func DefaultUnits() Units {
	return Units{
		CellSize: DefaultCellSize,
		Scale:    DefaultScale,
		Unit:     DefaultUnit,
	}
}

// Validate checks that every field is positive.
func (u Units) Validate() error {
	if u.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %d", ErrInvalidUnits, u.CellSize)
	}
	if u.Scale <= 0 || u.Unit <= 0 {
		return fmt.Errorf("%w: ratio %v/%v", ErrInvalidUnits, u.Scale, u.Unit)
	}
	return nil
}

// Samples returns the number of samples along one fragment edge (N+1).
func (u Units) Samples() int {
	return u.CellSize + 1
}

// FragmentLen returns the number of deltas in one fragment, (N+1)².
func (u Units) FragmentLen() int {
	return u.Samples() * u.Samples()
}

// Canonical converts a raw elevation to canonical units.
func (u Units) Canonical(raw float64) float64 {
	return raw * u.Scale / u.Unit
}

// Raw converts a canonical elevation back to raw units.
func (u Units) Raw(canonical float64) float64 {
	return canonical * u.Unit / u.Scale
}

// CheckCell reports whether every sample of c, including the shared far edge,
// has a global vertex that fits in int32.
func (u Units) CheckCell(c CellCoord) error {
	n := int64(u.CellSize)
	for _, axis := range []int32{c.X, c.Y} {
		lo := int64(axis) * n
		if lo < math.MinInt32 || lo+n > math.MaxInt32 {
			return fmt.Errorf("%w: cell %s with cell size %d", ErrCellRange, c, u.CellSize)
		}
	}
	return nil
}
