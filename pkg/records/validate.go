package records

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Validation errors.
var (
	ErrMissingType = errors.New("record has no type")
	ErrUnknownType = errors.New("unknown record type")
)

// Validate checks that every record carries a known type.
// All problems are returned together.
func Validate(list []Record) error {
	var err error
	for i, r := range list {
		t, ok := r["type"]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("record %d: %w", i, ErrMissingType))
			continue
		}
		name, ok := t.(string)
		if !ok || !IsKnownType(name) {
			err = multierr.Append(err, fmt.Errorf("record %d: %w: %v", i, ErrUnknownType, t))
		}
	}
	return err
}
