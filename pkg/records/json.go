package records

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Numbers are kept as json.Number so untouched fields survive a
// parse/marshal cycle without float rounding.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// JSON errors.
var (
	ErrNotArray  = errors.New("the outermost JSON value must be an array")
	ErrNotObject = errors.New("record is not a JSON object")
)

// Parse decodes a single record.
func Parse(data []byte) (Record, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, ErrNotObject
	}
	return Record(obj), nil
}

// ParseArray decodes a JSON array of records, as produced by the converter.
func ParseArray(data []byte) ([]Record, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, ErrNotArray
	}

	list := make([]Record, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("record %d: %w", i, ErrNotObject)
		}
		list[i] = Record(obj)
	}
	return list, nil
}

// MarshalArray encodes records as one compact JSON array.
func MarshalArray(list []Record) ([]byte, error) {
	if list == nil {
		list = []Record{}
	}
	return json.Marshal(list)
}

// MarshalRecord encodes one record for a human-edited file.
func MarshalRecord(r Record) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
