package tokenizer

import (
	"fmt"

	perrors "embedproxy/pkg/errors"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the encoding of text-embedding-ada-002.
const DefaultEncoding = "cl100k_base"

// Tiktoken decodes token ids and counts tokens with a BPE encoding.
// The underlying encoder is read-only after construction and safe for
// concurrent use.
type Tiktoken struct {
	encodingName string
	tke          *tiktoken.Tiktoken
}

// NewTiktoken loads encoding by name, or as a model name when it is not a
// known encoding. An empty name selects DefaultEncoding.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		tke, err = tiktoken.EncodingForModel(encoding)
		if err != nil {
			return nil, fmt.Errorf("load encoding %q: %w", encoding, err)
		}
	}

	return &Tiktoken{encodingName: encoding, tke: tke}, nil
}

func (t *Tiktoken) Encoding() string {
	return t.encodingName
}

// Decode turns token ids back into text. Ids unknown to the encoding
// contribute nothing.
func (t *Tiktoken) Decode(ids []int) (string, error) {
	if t == nil || t.tke == nil {
		return "", perrors.ErrTokenizerNotReady
	}
	return t.tke.Decode(ids), nil
}

func (t *Tiktoken) Encode(text string) ([]int, error) {
	if t == nil || t.tke == nil {
		return nil, perrors.ErrTokenizerNotReady
	}
	return t.tke.Encode(text, nil, nil), nil
}

// Count returns the number of tokens text encodes to.
func (t *Tiktoken) Count(text string) (int, error) {
	ids, err := t.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
