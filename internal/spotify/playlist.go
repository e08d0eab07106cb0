package spotify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zmb3/spotify/v2"

	"github.com/dlofaro/spotify-genie/internal/recommend"
)

const maxTracksPerRequest = 100

// SaveResult describes a playlist written to the user's Spotify account.
type SaveResult struct {
	PlaylistID string
	URL        string
	Added      int
	Skipped    int
}

// SavePlaylist creates a playlist on the user's account and fills it with
// the given recommendations. Tracks that already carry a real Spotify ID
// are added directly; local dataset tracks are resolved by search, and
// tracks the search cannot find are skipped with a warning.
func (c *Client) SavePlaylist(ctx context.Context, name, description string, recs []recommend.Recommendation) (*SaveResult, error) {
	var trackIDs []string
	skipped := 0

	for _, rec := range recs {
		if rec.ID != "" && !recommend.IsLocalID(rec.ID) {
			trackIDs = append(trackIDs, rec.ID)
			continue
		}

		id, err := c.ResolveTrackID(ctx, rec.Name, rec.Artist)
		if errors.Is(err, ErrTrackNotFound) {
			log.Printf("Warning: could not find %q by %s on Spotify, skipping", rec.Name, rec.Artist)
			skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", rec.Name, err)
		}
		trackIDs = append(trackIDs, id)
	}

	if len(trackIDs) == 0 {
		return nil, errors.New("no tracks could be resolved on Spotify")
	}

	playlistID, err := c.CreatePlaylist(ctx, name, description, false)
	if err != nil {
		return nil, err
	}
	if err := c.AddTracksToPlaylist(ctx, playlistID, trackIDs); err != nil {
		return nil, err
	}

	return &SaveResult{
		PlaylistID: playlistID,
		URL:        "https://open.spotify.com/playlist/" + playlistID,
		Added:      len(trackIDs),
		Skipped:    skipped,
	}, nil
}

// CreatePlaylist creates a new playlist for the current user.
// Returns the playlist ID.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string, public bool) (string, error) {
	userID, err := c.UserID(ctx)
	if err != nil {
		return "", err
	}

	playlist, err := c.api.CreatePlaylistForUser(ctx, userID, name, description, public, false)
	if err != nil {
		return "", fmt.Errorf("creating playlist: %w", err)
	}

	return playlist.ID.String(), nil
}

// AddTracksToPlaylist adds tracks to a playlist, handling batching for large sets.
// Spotify allows max 100 tracks per request.
func (c *Client) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}

	// Convert to spotify.ID
	ids := make([]spotify.ID, len(trackIDs))
	for i, id := range trackIDs {
		ids[i] = spotify.ID(id)
	}

	// Batch in chunks of 100
	for i := 0; i < len(ids); i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, len(ids))
		batch := ids[i:end]

		_, err := c.api.AddTracksToPlaylist(ctx, spotify.ID(playlistID), batch...)
		if err != nil {
			return fmt.Errorf("adding tracks (batch %d-%d): %w", i+1, end, err)
		}
	}

	return nil
}
