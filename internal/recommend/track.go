// Package recommend implements the content-based song recommendation engine:
// feature standardization, genre-affinity candidate filtering, and
// cosine-similarity ranking over a tabular song dataset.
package recommend

import "math"

// DefaultFeatures lists the audio features used for similarity scoring unless
// the engine is configured otherwise.
var DefaultFeatures = []string{
	"popularity",
	"danceability",
	"energy",
	"acousticness",
	"valence",
	"tempo",
}

// Track is one row of the song dataset.
// Audio feature fields are nil when the dataset does not carry a value.
type Track struct {
	ID         string
	Name       string
	Artist     string // Comma-separated artist names
	Genre      string
	AlbumCover string

	Popularity       *float64
	Danceability     *float64
	Energy           *float64
	Acousticness     *float64
	Valence          *float64
	Tempo            *float64
	Liveness         *float64
	Instrumentalness *float64
	Loudness         *float64
	Speechiness      *float64
	Mode             *float64
}

// FeatureValue returns the raw value of a named audio feature.
// The second return is false when the row does not carry the feature or the
// stored value is NaN.
func (t *Track) FeatureValue(name string) (float64, bool) {
	switch name {
	case "popularity":
		return featureValue(t.Popularity)
	case "danceability":
		return featureValue(t.Danceability)
	case "energy":
		return featureValue(t.Energy)
	case "acousticness":
		return featureValue(t.Acousticness)
	case "valence":
		return featureValue(t.Valence)
	case "tempo":
		return featureValue(t.Tempo)
	case "liveness":
		return featureValue(t.Liveness)
	case "instrumentalness":
		return featureValue(t.Instrumentalness)
	case "loudness":
		return featureValue(t.Loudness)
	case "speechiness":
		return featureValue(t.Speechiness)
	case "mode":
		return featureValue(t.Mode)
	}
	return 0, false
}

func featureValue(p *float64) (float64, bool) {
	if p == nil || math.IsNaN(*p) {
		return 0, false
	}
	return *p, true
}

// LikedSong names a track the user already likes. It carries no audio
// features itself; the engine resolves it against the dataset by
// case-insensitive exact name match plus partial artist match.
// Artist may be empty.
type LikedSong struct {
	Name   string
	Artist string
}
