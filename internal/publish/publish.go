package publish

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publish errors.
var (
	ErrNoBucket  = errors.New("no publish bucket configured")
	ErrNoPackage = errors.New("package not built")
)

// Manifest describes one published package. It is uploaded next to the
// package as <name>.json.
type Manifest struct {
	File      string    `json:"file"`
	Size      int       `json:"size"`
	SHA256    string    `json:"sha256"`
	Published time.Time `json:"published"`
}

// Result lists the keys written by Publish.
type Result struct {
	PackageKey  string
	ManifestKey string
	Manifest    Manifest
}

// Key joins prefix and name into an object key.
func Key(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Publish uploads the package at file under prefix, followed by its manifest.
// The manifest is written last so readers never see it before the package.
func Publish(fs Filesystem, file, prefix string, secondsCache int) (*Result, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoPackage, file)
		}
		return nil, err
	}

	name := filepath.Base(file)
	sum := sha256.Sum256(data)
	manifest := Manifest{
		File:      name,
		Size:      len(data),
		SHA256:    hex.EncodeToString(sum[:]),
		Published: time.Now().UTC().Truncate(time.Second),
	}

	result := &Result{
		PackageKey:  Key(prefix, name),
		ManifestKey: Key(prefix, strings.TrimSuffix(name, filepath.Ext(name))+".json"),
		Manifest:    manifest,
	}

	if err := fs.UploadFile(result.PackageKey, secondsCache, data); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", result.PackageKey, err)
	}

	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return nil, err
	}
	if err := fs.UploadFile(result.ManifestKey, secondsCache, manifestJSON); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", result.ManifestKey, err)
	}

	return result, nil
}
