package encoding

import "essayqa/internal/port"

// MemoEncoder wraps an encoder with a text-to-vector memo keyed by exact
// text. Two-tier retrieval embeds the same query at more than one stage;
// the memo collapses those repeats into one upstream call.
//
// The memo is meant to live for a single request and is not safe for
// concurrent use. Never share one across requests: if the underlying model
// is hot-swapped, a longer-lived memo would serve stale vectors.
type MemoEncoder struct {
	encoder port.Encoder
	memo    map[string][]float32
}

func NewMemoEncoder(encoder port.Encoder) *MemoEncoder {
	return &MemoEncoder{
		encoder: encoder,
		memo:    make(map[string][]float32),
	}
}

// Encode returns memoized vectors where available and asks the wrapped
// encoder only for texts it has not seen. Output order matches input order.
func (e *MemoEncoder) Encode(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var missing []string
	seen := make(map[string]bool, len(texts))
	for _, text := range texts {
		if _, ok := e.memo[text]; !ok && !seen[text] {
			missing = append(missing, text)
			seen[text] = true
		}
	}

	if len(missing) > 0 {
		vectors, err := e.encoder.Encode(missing)
		if err != nil {
			return nil, err
		}
		for i, text := range missing {
			if i < len(vectors) {
				e.memo[text] = vectors[i]
			}
		}
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.memo[text]
	}
	return out, nil
}

func (e *MemoEncoder) Dimension() int {
	return e.encoder.Dimension()
}

func (e *MemoEncoder) ModelName() string {
	return e.encoder.ModelName()
}
