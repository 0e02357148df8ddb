package records

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source pairs a record with the file it was loaded from.
type Source struct {
	Path   string
	Record Record
}

// LoadDir parses every *.json file below dir, in lexical path order.
func LoadDir(dir string) ([]Source, error) {
	var sources []Source

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		r, err := Parse(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		sources = append(sources, Source{Path: path, Record: r})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sources, nil
}

// WriteSplit writes each record to dir/<Type>/<stem>.json and returns the
// paths written, in list order.
func WriteSplit(dir string, list []Record) ([]string, error) {
	namer := NewNamer()
	paths := make([]string, 0, len(list))

	for i, r := range list {
		typeDir := filepath.Join(dir, SafeFileName(r.Type()))
		if err := os.MkdirAll(typeDir, 0755); err != nil {
			return paths, err
		}

		data, err := MarshalRecord(r)
		if err != nil {
			return paths, fmt.Errorf("encoding record %d: %w", i, err)
		}

		path := filepath.Join(typeDir, namer.Next(r)+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("failed to create a file: %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}
