package recommend

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2, 3},
			want: 1,
		},
		{
			name: "opposite vectors",
			a:    []float64{1, 2, 3},
			b:    []float64{-1, -2, -3},
			want: -1,
		},
		{
			name: "orthogonal vectors",
			a:    []float64{1, 0},
			b:    []float64{0, 1},
			want: 0,
		},
		{
			name: "zero norm left",
			a:    []float64{0, 0, 0},
			b:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "zero norm right",
			a:    []float64{1, 2, 3},
			b:    []float64{0, 0, 0},
			want: 0,
		},
		{
			name: "mismatched lengths",
			a:    []float64{1, 2},
			b:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "empty vectors",
			a:    nil,
			b:    nil,
			want: 0,
		},
	}

	const tolerance = 1e-12
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("CosineSimilarity = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	vectors := [][]float64{
		{0.5, -1.2, 3.3},
		{2, 0, -1},
		{-0.7, 0.7, 0.1},
	}

	for i := range vectors {
		for j := range vectors {
			ab := CosineSimilarity(vectors[i], vectors[j])
			ba := CosineSimilarity(vectors[j], vectors[i])
			if math.Abs(ab-ba) > 1e-12 {
				t.Errorf("sim(v%d,v%d) = %g but sim(v%d,v%d) = %g", i, j, ab, j, i, ba)
			}
		}
	}
}
