package encoding

// MockEncoder produces deterministic vectors derived from the text's runes.
// It stands in for a real model in tests and offline runs: identical texts
// always map to identical vectors, different texts usually differ, and no
// vector has zero norm.
type MockEncoder struct {
	dimension int
}

func NewMockEncoder(dimension int) *MockEncoder {
	if dimension <= 0 {
		dimension = 64
	}
	return &MockEncoder{dimension: dimension}
}

func (e *MockEncoder) Encode(texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.dimension)
		// First component is always set so even the empty string embeds
		// to a non-zero-norm vector, per the encoder contract.
		vec[0] = 1.0
		j := 1
		for _, r := range text {
			if j >= e.dimension {
				break
			}
			vec[j] = float32(r) / 1000.0
			j++
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (e *MockEncoder) Dimension() int {
	return e.dimension
}

func (e *MockEncoder) ModelName() string {
	return "mock"
}
