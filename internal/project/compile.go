package project

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spicy/pkg/landscape"
	"github.com/Faultbox/spicy/pkg/records"
)

// BuildResult summarises one compile.
type BuildResult struct {
	Records   int
	Landscape *landscape.Report
	Output    string
}

// Compile merges every record under common/data into common/cache/temp.json,
// reconciles the landscape on the way, and converts the result into
// common/build/out.esm. Record files themselves are not rewritten.
func (p *Project) Compile(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	if err := p.Layout.EnsureLayout(); err != nil {
		return nil, err
	}

	sources, err := records.LoadDir(p.Layout.Data())
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	list := make([]records.Record, len(sources))
	for i, s := range sources {
		list[i] = s.Record
	}
	p.Log.Info("records loaded", zap.Int("count", len(list)), zap.String("dir", p.Layout.Data()))

	report, err := p.Reconciler.Reconcile(records.Landscapes(list))
	if report != nil {
		p.logConflicts(report.Conflicts)
	}
	if err != nil {
		return nil, fmt.Errorf("reconciling landscape: %w", err)
	}
	p.Log.Info("landscape reconciled",
		zap.Int("records", report.Records),
		zap.Int("cells", report.Cells),
		zap.Int("conflicts", len(report.Conflicts)))

	data, err := records.MarshalArray(list)
	if err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	if err := os.WriteFile(p.Layout.TempJSON(), data, 0644); err != nil {
		return nil, err
	}

	output := p.Layout.Output()
	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing old package: %w", err)
	}

	if err := p.convert(ctx, p.Layout.TempJSON(), output); err != nil {
		return nil, err
	}

	p.Log.Info("package built",
		zap.String("output", output),
		zap.Duration("elapsed", time.Since(start)))

	return &BuildResult{Records: len(list), Landscape: report, Output: output}, nil
}

func (p *Project) logConflicts(conflicts []landscape.Conflict) {
	for _, c := range conflicts {
		p.Log.Warn("shared elevation sample disagrees",
			zap.Int32("x", c.Vertex.X),
			zap.Int32("y", c.Vertex.Y),
			zap.Stringer("cell", c.Cell),
			zap.Float64("previous", c.Previous),
			zap.Float64("value", c.Value))
	}
}
