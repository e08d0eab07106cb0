package recommend

import (
	"errors"
	"log"
	"math"
)

// ErrEmptyDataset is returned when standardization or recommendation is
// requested while the dataset is missing or empty.
var ErrEmptyDataset = errors.New("dataset is empty")

// Stats holds the statistics computed for one feature during standardization.
type Stats struct {
	Mean   float64
	StdDev float64
	Count  int // number of valid numeric values the stats were computed from
}

// Standardized holds z-scored feature values for a dataset in a row-major
// matrix parallel to the dataset slice. The raw tracks are never mutated;
// rebuilding after any dataset change is the caller's responsibility.
type Standardized struct {
	features []string
	stats    map[string]Stats
	rows     [][]float64
}

// StandardizeFeatures computes the arithmetic mean and population standard
// deviation of each named feature across the dataset and returns the z-scored
// matrix. Missing and non-numeric values standardize to 0. A feature with no
// valid values is skipped with a warning and its column stays zero, so every
// row keeps a vector of fixed width. A feature with zero variance also
// standardizes to 0 for every row; a constant column carries no signal and
// clamping avoids poisoning the scores with NaN.
func StandardizeFeatures(dataset []Track, features []string) (*Standardized, error) {
	if len(dataset) == 0 {
		return nil, ErrEmptyDataset
	}

	std := &Standardized{
		features: append([]string(nil), features...),
		stats:    make(map[string]Stats, len(features)),
		rows:     make([][]float64, len(dataset)),
	}
	for i := range std.rows {
		std.rows[i] = make([]float64, len(features))
	}

	for j, feature := range features {
		values := make([]float64, 0, len(dataset))
		for i := range dataset {
			if v, ok := dataset[i].FeatureValue(feature); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			log.Printf("Warning: feature %q has no valid values in dataset", feature)
			continue
		}

		var sum float64
		for _, v := range values {
			sum += v
		}
		mean := sum / float64(len(values))

		var sqDiffSum float64
		for _, v := range values {
			d := v - mean
			sqDiffSum += d * d
		}
		stdDev := math.Sqrt(sqDiffSum / float64(len(values)))

		std.stats[feature] = Stats{Mean: mean, StdDev: stdDev, Count: len(values)}

		if stdDev == 0 {
			continue
		}

		for i := range dataset {
			if v, ok := dataset[i].FeatureValue(feature); ok {
				std.rows[i][j] = (v - mean) / stdDev
			}
		}
	}

	return std, nil
}

// Vector returns the standardized feature vector for dataset row i.
// The returned slice is owned by the Standardized value and must not be
// modified.
func (s *Standardized) Vector(i int) []float64 {
	return s.rows[i]
}

// FeatureStats returns the statistics for a single feature. The second
// return is false for features that had no valid values.
func (s *Standardized) FeatureStats(feature string) (Stats, bool) {
	st, ok := s.stats[feature]
	return st, ok
}

// AllStats returns a copy of the per-feature statistics, for diagnostics.
func (s *Standardized) AllStats() map[string]Stats {
	out := make(map[string]Stats, len(s.stats))
	for k, v := range s.stats {
		out[k] = v
	}
	return out
}
