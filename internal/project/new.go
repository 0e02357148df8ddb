package project

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"

	"github.com/Faultbox/spicy/pkg/landscape"
	"github.com/Faultbox/spicy/pkg/records"
)

const (
	sampleAmplitude = 300.0 // raw units
	sampleAlpha     = 2.0
	sampleBeta      = 2.0
	sampleOctaves   = 3
)

// NewOptions describes the initial contents of a project.
type NewOptions struct {
	Author       string
	Description  string
	SampleRadius int // sample cells span [-r, r) on both axes, 0 = none
	SampleSeed   int64
}

// HeaderRecord returns the Header record of a new master file.
func HeaderRecord(author, description string) records.Record {
	return records.Record{
		"type":        records.TypeHeader,
		"author":      author,
		"description": description,
		"file_type":   "Esm",
		"masters":     []interface{}{},
		"version":     1.3,
	}
}

// New initializes the project with a Header record and, optionally, a block
// of generated landscape cells. It refuses to touch a project that already
// holds records.
func (p *Project) New(opts NewOptions) ([]string, error) {
	if err := p.Layout.EnsureLayout(); err != nil {
		return nil, err
	}

	existing, err := records.LoadDir(p.Layout.Data())
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %d records in %s", ErrProjectExists, len(existing), p.Layout.Data())
	}

	list := []records.Record{HeaderRecord(opts.Author, opts.Description)}

	if opts.SampleRadius > 0 {
		cells, err := SampleLandscape(p.Reconciler.Units, opts.SampleRadius, opts.SampleSeed)
		if err != nil {
			return nil, fmt.Errorf("generating sample landscape: %w", err)
		}
		list = append(list, cells...)
		p.Log.Info("generated sample landscape",
			zap.Int("cells", len(cells)),
			zap.Int64("seed", opts.SampleSeed))
	}

	return records.WriteSplit(p.Layout.Data(), list)
}

// SampleLandscape builds Landscape records for the cells in [-radius, radius)
// on both axes from one continuous Perlin field, so neighbouring cells agree
// on their shared edges.
func SampleLandscape(units landscape.Units, radius int, seed int64) ([]records.Record, error) {
	if err := units.Validate(); err != nil {
		return nil, err
	}

	grid := landscape.NewGrid(units)
	noise := perlin.NewPerlin(sampleAlpha, sampleBeta, sampleOctaves, seed)
	wavelength := float64(2 * units.CellSize)

	extent := radius * units.CellSize
	for vy := -extent; vy <= extent; vy++ {
		for vx := -extent; vx <= extent; vx++ {
			raw := math.Round(sampleAmplitude * noise.Noise2D(float64(vx)/wavelength, float64(vy)/wavelength))
			grid.Set(landscape.Vertex{X: int32(vx), Y: int32(vy)}, units.Canonical(raw))
		}
	}

	encoder := landscape.Encoder{Grid: grid}
	var list []records.Record
	for cy := -radius; cy < radius; cy++ {
		for cx := -radius; cx < radius; cx++ {
			f, err := encoder.Encode(landscape.CellCoord{X: int32(cx), Y: int32(cy)})
			if err != nil {
				return nil, err
			}
			list = append(list, records.NewLandscape(f))
		}
	}
	return list, nil
}
