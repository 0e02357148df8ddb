package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/spicy/pkg/records"
)

// Decompile converts a packaged file into one JSON file per record under
// common/data, replacing the directory of every known record type.
// OpenMW packages (.omwgame, .omwaddon) are copied to temp.esm first so the
// converter recognises them. Temporary files are removed whether or not the
// converter output is usable.
func (p *Project) Decompile(ctx context.Context, input string) ([]string, error) {
	if err := p.Layout.EnsureLayout(); err != nil {
		return nil, err
	}

	if info, err := os.Stat(input); err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input)
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case ".omwgame", ".omwaddon":
		p.Log.Debug("copying OpenMW package", zap.String("input", input))
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(p.Layout.TempESM(), data, 0644); err != nil {
			return nil, err
		}
		defer os.Remove(p.Layout.TempESM())
		input = p.Layout.TempESM()
	}

	temp := p.Layout.TempJSON()
	if err := os.Remove(temp); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err := p.convert(ctx, input, temp); err != nil {
		return nil, err
	}
	defer os.Remove(temp)

	data, err := os.ReadFile(temp)
	if err != nil {
		return nil, fmt.Errorf("reading converter output: %w", err)
	}
	list, err := records.ParseArray(data)
	if err != nil {
		return nil, fmt.Errorf("parsing converter output: %w", err)
	}
	if err := records.Validate(list); err != nil {
		return nil, err
	}

	for _, t := range records.KnownTypes {
		dir := filepath.Join(p.Layout.Data(), t)
		if err := os.RemoveAll(dir); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	paths, err := records.WriteSplit(p.Layout.Data(), list)
	if err != nil {
		return paths, err
	}
	p.Log.Info("records written", zap.Int("count", len(paths)), zap.String("dir", p.Layout.Data()))

	return paths, nil
}
