// Package project implements the workspace commands of the spicy tool:
// creating, clearing, compiling and decompiling a record project.
package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spicy/internal/config"
	"github.com/Faultbox/spicy/internal/logger"
	"github.com/Faultbox/spicy/pkg/landscape"
	"github.com/Faultbox/spicy/pkg/tes3conv"
)

// Project errors.
var (
	ErrProjectExists = errors.New("project already has records")
	ErrInputNotFound = errors.New("input file not found")
)

// Project is a workspace rooted at Layout.Root.
type Project struct {
	Layout     Layout
	Converter  *tes3conv.Converter
	Reconciler *landscape.Reconciler
	Timeout    time.Duration // per converter run, 0 = none
	Log        *zap.Logger
}

// Open builds a Project from configuration. The converter binary is only
// checked when a command needs it.
func Open(cfg *config.Config) (*Project, error) {
	reconciler, err := cfg.Landscape.Reconciler()
	if err != nil {
		return nil, fmt.Errorf("landscape settings: %w", err)
	}

	layout := Layout{Root: cfg.Project.Root}

	path := cfg.Converter.Path
	if path == "" {
		path, err = tes3conv.DefaultPath(layout.Root)
		if err != nil {
			return nil, err
		}
	}

	return &Project{
		Layout:     layout,
		Converter:  tes3conv.New(path),
		Reconciler: reconciler,
		Timeout:    cfg.Converter.Timeout,
		Log:        logger.Named("project"),
	}, nil
}

func (p *Project) convert(ctx context.Context, input, output string) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	start := time.Now()
	p.Log.Debug("running converter",
		zap.String("converter", p.Converter.Path),
		zap.String("input", input),
		zap.String("output", output))

	if err := p.Converter.Convert(ctx, input, output); err != nil {
		return err
	}

	p.Log.Debug("converter finished", zap.Duration("elapsed", time.Since(start)))
	return nil
}
