// spicy is a project tool for Morrowind/OpenMW game data: it splits packages
// into per-record JSON files and builds them back, keeping landscape seams
// consistent.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/spicy/internal/config"
	"github.com/Faultbox/spicy/internal/logger"
	"github.com/Faultbox/spicy/internal/project"
	"github.com/Faultbox/spicy/internal/publish"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var run func(context.Context, *config.Config, []string) error
	switch command {
	case "new":
		run = cmdNew
	case "clear":
		run = cmdClear
	case "compile", "build":
		run = cmdCompile
	case "decompile", "split":
		run = cmdDecompile
	case "publish":
		run = cmdPublish
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := config.ParseFlags(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, config.Args()); err != nil {
		logger.Error(command+" failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`spicy - Morrowind/OpenMW record project tool

Usage:
  spicy <command> [options] [args]

Commands:
  new                   Create a project with a Header record (and spicy.yaml)
  clear                 Empty common/cache, common/build and common/data
  compile               Build common/data into common/build/out.esm
  decompile <file>      Split a .esm/.esp/.omwgame/.omwaddon into common/data
  publish               Upload common/build/out.esm to the configured bucket

Options:
  -config <path>        Config file (default <root>/spicy.yaml over the user config)
  -root <dir>           Project root (default .)
  -converter <path>     tes3conv binary (default common/tes3conv/<os>/)
  -edges <policy>       Landscape seams: overwrite, warn or strict
  -sample <radius>      new: generate sample landscape cells
  -log <file>           Also log to file
  -debug                Debug logging

Examples:
  spicy new -sample 2
  spicy decompile -root mymod Morrowind.esm
  spicy compile -edges warn`)
}

func cmdNew(_ context.Context, cfg *config.Config, _ []string) error {
	p, err := project.Open(cfg)
	if err != nil {
		return err
	}

	paths, err := p.New(project.NewOptions{
		Author:       cfg.Project.Author,
		Description:  cfg.Project.Description,
		SampleRadius: cfg.Project.SampleRadius,
		SampleSeed:   cfg.Project.SampleSeed,
	})
	if err != nil {
		return err
	}

	configPath := config.ProjectFile(p.Layout.Root)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("writing %s: %w", configPath, err)
		}
		logger.Info("config written", zap.String("path", configPath))
	}

	fmt.Printf("Created %d record files in %s\n", len(paths), p.Layout.Data())
	return nil
}

func cmdClear(_ context.Context, cfg *config.Config, _ []string) error {
	layout := project.Layout{Root: cfg.Project.Root}
	if err := layout.Clear(); err != nil {
		return err
	}
	fmt.Printf("Cleared %s\n", layout.Common())
	return nil
}

func cmdCompile(ctx context.Context, cfg *config.Config, _ []string) error {
	p, err := project.Open(cfg)
	if err != nil {
		return err
	}

	result, err := p.Compile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Records:   %d\n", result.Records)
	fmt.Printf("Landscape: %d records, %d cells, %d seam conflicts\n",
		result.Landscape.Records, result.Landscape.Cells, len(result.Landscape.Conflicts))
	fmt.Printf("Output:    %s\n", result.Output)
	return nil
}

func cmdDecompile(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: spicy decompile [options] <file>")
	}

	p, err := project.Open(cfg)
	if err != nil {
		return err
	}

	paths, err := p.Decompile(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d record files to %s\n", len(paths), p.Layout.Data())
	return nil
}

func cmdPublish(_ context.Context, cfg *config.Config, _ []string) error {
	sess, err := publish.NewSession(cfg.Publish.Region)
	if err != nil {
		return err
	}
	fs, err := publish.NewS3Filesystem(sess, cfg.Publish.Bucket)
	if err != nil {
		return err
	}

	layout := project.Layout{Root: cfg.Project.Root}
	result, err := publish.Publish(fs, layout.Output(), cfg.Publish.Prefix, cfg.Publish.CacheSeconds)
	if err != nil {
		return err
	}

	fmt.Printf("Published s3://%s/%s (%d bytes, sha256 %s)\n",
		cfg.Publish.Bucket, result.PackageKey, result.Manifest.Size, result.Manifest.SHA256)
	return nil
}
