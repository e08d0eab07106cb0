package recommend

import "math"

// CosineSimilarity returns the cosine of the angle between two equal-length
// vectors, in [-1, 1]. Returns 0 when either vector has zero norm, which
// avoids a division by zero for all-default feature vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
