package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/dlofaro/spotify-genie/internal/playlist"
	"github.com/dlofaro/spotify-genie/internal/recommend"
)

const maxSeedTracks = 5

// SeededRecommendations asks Spotify's recommendation endpoint for tracks
// similar to the seed tracks, steered toward the given mood. At most five
// seeds are used per Spotify API limits; extras are dropped.
func (c *Client) SeededRecommendations(ctx context.Context, seedIDs []string, mood playlist.Mood, limit int) ([]recommend.Track, error) {
	if len(seedIDs) == 0 {
		return nil, errors.New("at least one seed track is required")
	}
	if len(seedIDs) > maxSeedTracks {
		seedIDs = seedIDs[:maxSeedTracks]
	}

	seeds := spotify.Seeds{Tracks: make([]spotify.ID, len(seedIDs))}
	for i, id := range seedIDs {
		seeds.Tracks[i] = spotify.ID(id)
	}

	recs, err := c.api.GetRecommendations(ctx, seeds, moodAttributes(mood), spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("fetching recommendations: %w", err)
	}

	tracks := make([]recommend.Track, 0, len(recs.Tracks))
	for _, t := range recs.Tracks {
		tracks = append(tracks, recommend.Track{
			ID:         t.ID.String(),
			Name:       t.Name,
			Artist:     joinArtists(t.Artists),
			AlbumCover: albumCoverURL(t.Album),
		})
	}
	return tracks, nil
}

// moodAttributes maps a mood to target audio attributes for the
// recommendation endpoint.
func moodAttributes(mood playlist.Mood) *spotify.TrackAttributes {
	attrs := spotify.NewTrackAttributes()
	switch mood {
	case playlist.MoodHappy:
		attrs.TargetValence(0.9).TargetEnergy(0.7).TargetDanceability(0.7)
	case playlist.MoodSad:
		attrs.TargetValence(0.1).TargetEnergy(0.3).TargetAcousticness(0.7)
	case playlist.MoodChill:
		attrs.TargetEnergy(0.25).TargetAcousticness(0.7).TargetTempo(100)
	case playlist.MoodHype:
		attrs.TargetEnergy(0.95).TargetDanceability(0.8).TargetTempo(140)
	}
	return attrs
}
