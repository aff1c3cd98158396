package port

// Encoder turns text into fixed-length embedding vectors.
//
// Implementations must be deterministic for a given model instance and must
// succeed for any string input, including the empty string. Swapping the
// model behind this interface must not change retrieval logic.
type Encoder interface {
	// Encode generates one vector per input text, in input order.
	// An empty input yields an empty result and no error.
	Encode(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
