package landscape

import (
	"fmt"
	"sort"
)

// CellCoord identifies one cell of the overworld grid.
type CellCoord struct {
	X, Y int32
}

// String returns the coordinate as "[X, Y]", the way records spell it.
func (c CellCoord) String() string {
	return fmt.Sprintf("[%d, %d]", c.X, c.Y)
}

// Less orders cells by X, then Y.
func (c CellCoord) Less(o CellCoord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// Origin returns the global vertex of local sample (0, 0).
func (c CellCoord) Origin(cellSize int) Vertex {
	return Vertex{X: c.X * int32(cellSize), Y: c.Y * int32(cellSize)}
}

// Vertex identifies one elevation sample in the world-spanning grid.
type Vertex struct {
	X, Y int32
}

// Add offsets the vertex by a local sample index.
func (v Vertex) Add(dx, dy int) Vertex {
	return Vertex{X: v.X + int32(dx), Y: v.Y + int32(dy)}
}

// Cell is the dense elevation store of one region, N×N samples.
// The N-th sample along an axis lives at local index 0 of the next cell.
type Cell struct {
	size       int
	elevations []float64
	written    []bool
}

func newCell(size int) *Cell {
	return &Cell{
		size:       size,
		elevations: make([]float64, size*size),
		written:    make([]bool, size*size),
	}
}

func (c *Cell) index(x, y int) int {
	return x + y*c.size
}

// Elevation returns the canonical elevation at a local sample.
func (c *Cell) Elevation(x, y int) float64 {
	return c.elevations[c.index(x, y)]
}

// Written reports whether the local sample has been assigned.
func (c *Cell) Written(x, y int) bool {
	return c.written[c.index(x, y)]
}

func (c *Cell) set(x, y int, value float64) {
	i := c.index(x, y)
	c.elevations[i] = value
	c.written[i] = true
}

// Grid is a sparse collection of cells keyed by cell coordinate.
// It owns every Cell it hands out.
type Grid struct {
	units Units
	cells map[CellCoord]*Cell
}

// NewGrid returns an empty grid for the given units.
func NewGrid(units Units) *Grid {
	return &Grid{
		units: units,
		cells: make(map[CellCoord]*Cell),
	}
}

// Units returns the units the grid was created with.
func (g *Grid) Units() Units {
	return g.units
}

// Len returns the number of allocated cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cell returns the cell at c, or nil if it was never written.
func (g *Grid) Cell(c CellCoord) *Cell {
	return g.cells[c]
}

// GetOrCreate returns the cell at c, allocating a zero-filled one if needed.
func (g *Grid) GetOrCreate(c CellCoord) *Cell {
	cell, ok := g.cells[c]
	if !ok {
		cell = newCell(g.units.CellSize)
		g.cells[c] = cell
	}
	return cell
}

// Translate splits a global vertex into its cell and local sample index.
// Division is Euclidean, so local indices are always in [0, N).
func (g *Grid) Translate(v Vertex) (c CellCoord, x, y int) {
	n := int32(g.units.CellSize)
	cx, lx := floorDivMod(v.X, n)
	cy, ly := floorDivMod(v.Y, n)
	return CellCoord{X: cx, Y: cy}, int(lx), int(ly)
}

// Set stores a canonical elevation, creating the owning cell on demand.
// It returns the previous value and whether the sample had been written.
func (g *Grid) Set(v Vertex, value float64) (previous float64, written bool) {
	c, x, y := g.Translate(v)
	cell := g.GetOrCreate(c)
	previous, written = cell.Elevation(x, y), cell.Written(x, y)
	cell.set(x, y, value)
	return previous, written
}

// Get reads a canonical elevation. Samples of missing cells read as zero.
func (g *Grid) Get(v Vertex) (float64, bool) {
	c, x, y := g.Translate(v)
	cell := g.cells[c]
	if cell == nil {
		return 0, false
	}
	return cell.Elevation(x, y), cell.Written(x, y)
}

// Coords returns all allocated cell coordinates in ascending order.
func (g *Grid) Coords() []CellCoord {
	coords := make([]CellCoord, 0, len(g.cells))
	for c := range g.cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
	return coords
}

func floorDivMod(a, n int32) (q, r int32) {
	q, r = a/n, a%n
	if r < 0 {
		q--
		r += n
	}
	return q, r
}
