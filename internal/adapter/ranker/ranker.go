package ranker

import (
	"errors"
	"math"
)

// ErrNoCandidates is returned when MostSimilar is called with an empty
// candidate set. Callers are expected to check emptiness first; hitting
// this error is a programming mistake, not a runtime condition.
var ErrNoCandidates = errors.New("ranker: empty candidate set")

// MostSimilar computes cosine similarity between the query vector and every
// candidate vector, in candidate order, and returns the index of the best
// match together with its score. Ties break toward the lowest index, so
// callers can safely index back into parallel text slices.
func MostSimilar(query []float32, candidates [][]float32) (int, float64, error) {
	if len(candidates) == 0 {
		return 0, 0, ErrNoCandidates
	}

	bestIdx := 0
	bestScore := CosineSimilarity(query, candidates[0])

	for i := 1; i < len(candidates); i++ {
		score := CosineSimilarity(query, candidates[i])
		if score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}

	return bestIdx, bestScore, nil
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Mismatched or zero-norm vectors score 0; the encoder contract guarantees
// non-zero-norm output for any input, so that path is not hit in practice.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
