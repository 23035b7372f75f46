package gateway

import (
	"encoding/json"
	"testing"

	perrors "embedproxy/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []TextUnit
	}{
		{"single string", `"hello world"`, []TextUnit{{Text: "hello world"}}},
		{"empty string", `""`, []TextUnit{{Text: ""}}},
		{"token ids", `[15339, 1917]`, []TextUnit{{Tokens: []int{15339, 1917}}}},
		{"strings", `["a", "b", "c"]`, []TextUnit{{Text: "a"}, {Text: "b"}, {Text: "c"}}},
		{"token id arrays", `[[1, 2], [3]]`, []TextUnit{{Tokens: []int{1, 2}}, {Tokens: []int{3}}}},
		{"mixed units", `["a", [4, 5]]`, []TextUnit{{Text: "a"}, {Tokens: []int{4, 5}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, err := ParseInput(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, units)
		})
	}
}

func TestParseInputMissing(t *testing.T) {
	_, err := ParseInput(nil)
	assert.ErrorIs(t, err, perrors.ErrMissingInput)
}

func TestParseInputInvalid(t *testing.T) {
	for name, raw := range map[string]string{
		"number":              `42`,
		"boolean":             `true`,
		"null":                `null`,
		"object":              `{"text": "a"}`,
		"empty array":         `[]`,
		"float ids":           `[1.5, 2]`,
		"negative ids":        `[-1, 2]`,
		"number among text":   `["a", 1]`,
		"object element":      `["a", {"b": 1}]`,
		"nested strings":      `[["a", "b"]]`,
		"empty nested array":  `["a", []]`,
		"doubly nested array": `[[[1]]]`,
	} {
		t.Run(name, func(t *testing.T) {
			units, err := ParseInput(json.RawMessage(raw))
			assert.Nil(t, units)
			assert.ErrorIs(t, err, perrors.ErrInvalidInputType)
		})
	}
}

func TestTextUnitTokenized(t *testing.T) {
	assert.False(t, TextUnit{Text: "a"}.Tokenized())
	assert.True(t, TextUnit{Tokens: []int{1}}.Tokenized())
}
