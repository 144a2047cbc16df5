package backend

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codec     tokenizer.Codec
	codecOnce sync.Once
	codecErr  error
)

func getCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return codec, codecErr
}

// EstimateTokens counts tokens using the cl100k_base encoding. The count is
// exact for the OpenAI chat model and a close approximation for the others.
func EstimateTokens(text string) (int, error) {
	c, err := getCodec()
	if err != nil {
		return 0, err
	}
	ids, _, err := c.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// EstimateTokensSimple is EstimateTokens with a rough chars/4 fallback when
// the tokenizer is unavailable.
func EstimateTokensSimple(text string) int {
	n, err := EstimateTokens(text)
	if err != nil {
		return len(text) / 4
	}
	return n
}
