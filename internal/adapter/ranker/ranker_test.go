package ranker

import (
	"errors"
	"math"
	"testing"
)

func TestMostSimilar(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := [][]float32{
		{0, 1, 0},        // orthogonal
		{1, 1, 0},        // 45 degrees
		{0.9, 0.1, 0},    // close
		{-1, 0, 0},       // opposite
	}

	idx, score, err := MostSimilar(query, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 2 {
		t.Errorf("expected index 2, got %d", idx)
	}
	if score <= 0.9 {
		t.Errorf("expected score above 0.9, got %f", score)
	}
}

func TestMostSimilar_TieBreaksToLowestIndex(t *testing.T) {
	query := []float32{1, 0}
	candidates := [][]float32{
		{0, 1},
		{2, 0}, // same direction as query, same similarity as below
		{1, 0},
		{3, 0},
	}

	idx, score, err := MostSimilar(query, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected first maximal index 1, got %d", idx)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("expected score 1.0, got %f", score)
	}
}

func TestMostSimilar_EmptyCandidates(t *testing.T) {
	_, _, err := MostSimilar([]float32{1, 0}, nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
}

func TestMostSimilar_SingleCandidate(t *testing.T) {
	idx, _, err := MostSimilar([]float32{0, 1}, [][]float32{{1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 {
		t.Errorf("expected index 0, got %d", idx)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"scaled", []float32{1, 1}, []float32{5, 5}, 1.0},
		{"mismatched lengths", []float32{1, 0}, []float32{1, 0, 0}, 0.0},
		{"zero norm", []float32{0, 0}, []float32{1, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("CosineSimilarity(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
