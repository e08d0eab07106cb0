package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify/v2"
)

// ErrTrackNotFound indicates a search query returned no results.
var ErrTrackNotFound = errors.New("track not found on Spotify")

// ResolveTrackID searches Spotify for a track by name and artist and
// returns the ID of the top hit. Returns ErrTrackNotFound when the search
// comes back empty.
func (c *Client) ResolveTrackID(ctx context.Context, name, artist string) (string, error) {
	query := name
	if artist != "" {
		query = fmt.Sprintf("track:%s artist:%s", name, artist)
	}

	result, err := c.api.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(1))
	if err != nil {
		return "", fmt.Errorf("searching for %q: %w", name, err)
	}
	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return "", ErrTrackNotFound
	}

	return result.Tracks.Tracks[0].ID.String(), nil
}
