package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/dlofaro/spotify-genie/internal/playlist"
	"github.com/dlofaro/spotify-genie/internal/recommend"
)

// FetchAudioFeatures retrieves audio features for the given library tracks.
// Updates tracks in-place with their audio features.
// Batches requests to max 100 tracks per request per Spotify API limits.
// Tracks without available audio features will have nil feature fields.
func (c *Client) FetchAudioFeatures(ctx context.Context, tracks []playlist.LibraryTrack) error {
	if len(tracks) == 0 {
		return nil
	}

	// Build ID slice and index map for fast lookup
	ids := make([]spotify.ID, len(tracks))
	indexByID := make(map[string]int, len(tracks))
	for i, t := range tracks {
		ids[i] = spotify.ID(t.Track.ID)
		indexByID[t.Track.ID] = i
	}

	total := len(ids)

	// Fetch in batches of 100
	for i := 0; i < total; i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, total)
		batch := ids[i:end]

		fmt.Printf("Fetching audio features %d-%d of %d...\n", i+1, end, total)

		features, err := c.api.GetAudioFeatures(ctx, batch...)
		if err != nil {
			return fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		// Map features back to tracks
		for _, f := range features {
			if f == nil {
				continue // Track has no audio features
			}
			idx, ok := indexByID[f.ID.String()]
			if !ok {
				continue
			}
			applyAudioFeatures(&tracks[idx].Track, f)
		}
	}

	fmt.Printf("Fetched audio features for %d tracks.\n", total)
	return nil
}

// applyAudioFeatures copies audio feature values to a track, widening the
// API's float32 values to the engine's float64 fields.
func applyAudioFeatures(t *recommend.Track, f *spotify.AudioFeatures) {
	t.Acousticness = f64(f.Acousticness)
	t.Danceability = f64(f.Danceability)
	t.Energy = f64(f.Energy)
	t.Instrumentalness = f64(f.Instrumentalness)
	t.Liveness = f64(f.Liveness)
	t.Loudness = f64(f.Loudness)
	t.Speechiness = f64(f.Speechiness)
	t.Tempo = f64(f.Tempo)
	t.Valence = f64(f.Valence)
	mode := float64(f.Mode)
	t.Mode = &mode
}

func f64(v float32) *float64 {
	f := float64(v)
	return &f
}
