package records

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/spicy/pkg/landscape"
)

// Landscape record errors.
var (
	ErrLandscapeGrid = errors.New("invalid landscape grid")
	ErrVertexData    = errors.New("invalid vertex height data")
)

// Landscape is a view over a "Landscape" record that exposes its heightmap
// fragment. Only vertex_heights.offset and vertex_heights.data are ever written.
type Landscape struct {
	Record Record
}

// Landscapes returns views over every Landscape record in list, in list order.
func Landscapes(list []Record) []landscape.Record {
	var views []landscape.Record
	for _, r := range list {
		if r.Type() == TypeLandscape {
			views = append(views, &Landscape{Record: r})
		}
	}
	return views
}

// NewLandscape builds a minimal Landscape record holding f.
func NewLandscape(f landscape.Fragment) Record {
	r := Record{
		"type": TypeLandscape,
		"grid": []interface{}{int64(f.Cell.X), int64(f.Cell.Y)},
	}
	(&Landscape{Record: r}).SetFragment(f)
	return r
}

// Cell returns the record's grid coordinate.
func (l *Landscape) Cell() (landscape.CellCoord, error) {
	grid, ok := l.Record["grid"].([]interface{})
	if !ok || len(grid) != 2 {
		return landscape.CellCoord{}, fmt.Errorf("%w: expected [x, y], got %v", ErrLandscapeGrid, l.Record["grid"])
	}
	x, okX := toInt64(grid[0])
	y, okY := toInt64(grid[1])
	if !okX || !okY {
		return landscape.CellCoord{}, fmt.Errorf("%w: non-integer coordinate in %v", ErrLandscapeGrid, grid)
	}
	if x < math.MinInt32 || x > math.MaxInt32 || y < math.MinInt32 || y > math.MaxInt32 {
		return landscape.CellCoord{}, fmt.Errorf("%w: coordinate out of range in %v", ErrLandscapeGrid, grid)
	}
	return landscape.CellCoord{X: int32(x), Y: int32(y)}, nil
}

// Fragment decodes the record's vertex heights. A missing or non-numeric
// offset reads as 0. The delta count is checked by the decoder.
func (l *Landscape) Fragment() (landscape.Fragment, error) {
	cell, err := l.Cell()
	if err != nil {
		return landscape.Fragment{}, err
	}

	heights, ok := l.Record["vertex_heights"].(map[string]interface{})
	if !ok {
		return landscape.Fragment{}, fmt.Errorf("%w: cell %s has no vertex_heights", ErrVertexData, cell)
	}

	data, ok := heights["data"].(string)
	if !ok {
		return landscape.Fragment{}, fmt.Errorf("%w: cell %s: data is not a string", ErrVertexData, cell)
	}
	deltas, err := DecodeDeltas(data)
	if err != nil {
		return landscape.Fragment{}, fmt.Errorf("cell %s: %w", cell, err)
	}

	return landscape.Fragment{
		Cell:   cell,
		Offset: offsetOf(heights["offset"]),
		Deltas: deltas,
	}, nil
}

// SetFragment replaces vertex_heights.offset and vertex_heights.data.
func (l *Landscape) SetFragment(f landscape.Fragment) {
	heights, ok := l.Record["vertex_heights"].(map[string]interface{})
	if !ok {
		heights = make(map[string]interface{})
		l.Record["vertex_heights"] = heights
	}
	heights["offset"] = f.Offset
	heights["data"] = EncodeDeltas(f.Deltas)
}

func offsetOf(v interface{}) float32 {
	f, ok := toFloat64(v)
	if !ok {
		return 0
	}
	offset := float32(f)
	if math32.IsNaN(offset) || math32.IsInf(offset, 0) {
		return 0
	}
	return offset
}

// DecodeDeltas decodes base64 text into signed deltas.
func DecodeDeltas(data string) ([]int8, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVertexData, err)
	}
	deltas := make([]int8, len(raw))
	for i, b := range raw {
		deltas[i] = int8(b)
	}
	return deltas, nil
}

// EncodeDeltas encodes signed deltas as base64 text.
func EncodeDeltas(deltas []int8) string {
	raw := make([]byte, len(deltas))
	for i, d := range deltas {
		raw[i] = byte(d)
	}
	return base64.StdEncoding.EncodeToString(raw)
}
