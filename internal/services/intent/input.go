package intent

import (
	"strings"

	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

// Input is a message prepared once for every matcher.
type Input struct {
	Raw        string
	Lower      string
	Normalized string
	Tokens     []string
}

// NewInput lowercases and tokenises message.
func NewInput(message string) Input {
	tokens := textutil.Tokenize(message)
	return Input{
		Raw:        message,
		Lower:      strings.ToLower(message),
		Normalized: strings.Join(tokens, " "),
		Tokens:     tokens,
	}
}

// HasPhrase reports whether phrase occurs on token boundaries.
func (in Input) HasPhrase(phrase string) bool {
	return textutil.ContainsSequence(in.Tokens, textutil.Tokenize(phrase))
}
