package project

import (
	"os"
	"path/filepath"
)

// Layout resolves the fixed directory structure under a project root.
type Layout struct {
	Root string
}

// Common returns the directory holding every managed subdirectory.
func (l Layout) Common() string { return filepath.Join(l.Root, "common") }

// Cache holds intermediate files such as temp.json.
func (l Layout) Cache() string { return filepath.Join(l.Common(), "cache") }

// Build holds the compiled package.
func (l Layout) Build() string { return filepath.Join(l.Common(), "build") }

// Data holds one JSON file per record, grouped by record type.
func (l Layout) Data() string { return filepath.Join(l.Common(), "data") }

// Converter holds the tes3conv binaries.
func (l Layout) Converter() string { return filepath.Join(l.Common(), "tes3conv") }

// TempJSON is the merged record array handed to or received from the converter.
func (l Layout) TempJSON() string { return filepath.Join(l.Cache(), "temp.json") }

// TempESM is where OpenMW packages are copied before conversion.
func (l Layout) TempESM() string { return filepath.Join(l.Cache(), "temp.esm") }

// Output is the compiled package.
func (l Layout) Output() string { return filepath.Join(l.Build(), "out.esm") }

func (l Layout) managed() []string {
	return []string{l.Cache(), l.Build(), l.Data()}
}

// EnsureLayout clears the project if any managed directory is missing.
func (l Layout) EnsureLayout() error {
	for _, dir := range l.managed() {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return l.Clear()
		}
	}
	return nil
}

// Clear removes the cache, build and data directories and recreates them
// empty, each with a .gitkeep file. The converter directory is left alone.
func (l Layout) Clear() error {
	for _, dir := range l.managed() {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, ".gitkeep"), nil, 0644); err != nil {
			return err
		}
	}
	return nil
}
