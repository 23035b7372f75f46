package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	perrors "embedproxy/pkg/errors"
)

// TextUnit is one thing to embed: plain text, or token ids to be decoded.
type TextUnit struct {
	Text   string
	Tokens []int
}

func (u TextUnit) Tokenized() bool {
	return u.Tokens != nil
}

// ParseInput normalizes the raw input field into text units. Accepted shapes
// are a string, a non-empty array of integers, or a non-empty array whose
// elements are strings or non-empty arrays of integers.
func ParseInput(raw json.RawMessage) ([]TextUnit, error) {
	if len(raw) == 0 {
		return nil, perrors.ErrMissingInput
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrInvalidInputType, err)
	}

	switch input := v.(type) {
	case string:
		return []TextUnit{{Text: input}}, nil
	case []any:
		if len(input) == 0 {
			return nil, fmt.Errorf("%w: empty array", perrors.ErrInvalidInputType)
		}
		if ids, ok := tokenIDs(input); ok {
			return []TextUnit{{Tokens: ids}}, nil
		}

		units := make([]TextUnit, 0, len(input))
		for i, elem := range input {
			switch item := elem.(type) {
			case string:
				units = append(units, TextUnit{Text: item})
			case []any:
				ids, ok := tokenIDs(item)
				if !ok {
					return nil, fmt.Errorf("%w: element %d is not an array of token ids", perrors.ErrInvalidInputType, i)
				}
				units = append(units, TextUnit{Tokens: ids})
			default:
				return nil, fmt.Errorf("%w: element %d is %s", perrors.ErrInvalidInputType, i, jsonKind(elem))
			}
		}
		return units, nil
	default:
		return nil, fmt.Errorf("%w: %s", perrors.ErrInvalidInputType, jsonKind(v))
	}
}

// tokenIDs reports whether arr is a non-empty array of non-negative integers.
func tokenIDs(arr []any) ([]int, bool) {
	if len(arr) == 0 {
		return nil, false
	}
	ids := make([]int, len(arr))
	for i, elem := range arr {
		n, ok := elem.(json.Number)
		if !ok {
			return nil, false
		}
		id, err := n.Int64()
		if err != nil || id < 0 {
			return nil, false
		}
		ids[i] = int(id)
	}
	return ids, true
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
