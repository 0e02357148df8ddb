// Package tes3conv runs the external tes3conv binary, which converts between
// packaged game-data files (.esm/.esp) and JSON record arrays.
package tes3conv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Converter errors.
var (
	ErrUnsupportedOS = errors.New("unsupported OS")
	ErrNotFound      = errors.New("tes3conv binary not found")
)

// DefaultPath returns where a project keeps the converter for the current OS.
func DefaultPath(root string) (string, error) {
	return pathFor(root, runtime.GOOS)
}

func pathFor(root, goos string) (string, error) {
	switch goos {
	case "windows":
		return filepath.Join(root, "common", "tes3conv", "windows", "tes3conv.exe"), nil
	case "linux":
		return filepath.Join(root, "common", "tes3conv", "ubuntu", "tes3conv"), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
}

// Converter invokes tes3conv. Output of the child process goes to Stdout and
// Stderr; nil means the current process's streams.
type Converter struct {
	Path   string
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a converter for the binary at path.
func New(path string) *Converter {
	return &Converter{Path: path}
}

// Check verifies that the converter binary exists.
func (c *Converter) Check() error {
	info, err := os.Stat(c.Path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, c.Path)
	}
	return nil
}

// Convert runs "tes3conv <input> <output>". The direction is chosen by
// tes3conv from the file extensions.
func (c *Converter) Convert(ctx context.Context, input, output string) error {
	if err := c.Check(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, c.Path, input, output)
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", filepath.Base(c.Path), err)
	}
	return nil
}
