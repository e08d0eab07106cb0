package spotify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"

	"github.com/dlofaro/spotify-genie/internal/playlist"
	"github.com/dlofaro/spotify-genie/internal/recommend"
)

// FetchSavedTracks retrieves tracks from the user's library as library
// tracks ready for playlist building. A limit of 0 fetches every page;
// otherwise fetching stops once limit tracks have been collected.
// Progress is logged to stdout during fetch.
func (c *Client) FetchSavedTracks(ctx context.Context, limit int) ([]playlist.LibraryTrack, error) {
	var tracks []playlist.LibraryTrack

	// Limit 50 is the max page size per request
	page, err := c.api.CurrentUsersTracks(ctx, spotify.Limit(50))
	if err != nil {
		return nil, fmt.Errorf("fetching saved tracks: %w", err)
	}

	for {
		for _, saved := range page.Tracks {
			tracks = append(tracks, convertSavedTrack(saved))
			if limit > 0 && len(tracks) >= limit {
				fmt.Printf("Fetched %d tracks.\n", len(tracks))
				return tracks, nil
			}
		}

		fmt.Printf("Fetched %d tracks...\n", len(tracks))

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	fmt.Printf("Fetched %d tracks total.\n", len(tracks))
	return tracks, nil
}

// FetchSavedTracksMetadata retrieves the full library with album and
// duration metadata for database syncing.
func (c *Client) FetchSavedTracksMetadata(ctx context.Context) ([]SavedTrackMeta, error) {
	var tracks []SavedTrackMeta

	page, err := c.api.CurrentUsersTracks(ctx, spotify.Limit(50))
	if err != nil {
		return nil, fmt.Errorf("fetching saved tracks: %w", err)
	}

	for {
		for _, saved := range page.Tracks {
			tracks = append(tracks, convertSavedTrackMeta(saved))
		}

		err = c.api.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetching next page: %w", err)
		}
	}

	return tracks, nil
}

// ToLikedSongs projects library tracks down to the name/artist pairs the
// recommendation engine matches against.
func ToLikedSongs(tracks []playlist.LibraryTrack) []recommend.LikedSong {
	liked := make([]recommend.LikedSong, len(tracks))
	for i, t := range tracks {
		liked[i] = recommend.LikedSong{Name: t.Track.Name, Artist: t.Track.Artist}
	}
	return liked
}

// convertSavedTrack converts a Spotify SavedTrack to a library track.
func convertSavedTrack(saved spotify.SavedTrack) playlist.LibraryTrack {
	popularity := float64(saved.Popularity)

	track := recommend.Track{
		ID:         saved.ID.String(),
		Name:       saved.Name,
		Artist:     joinArtists(saved.Artists),
		AlbumCover: albumCoverURL(saved.Album),
		Popularity: &popularity,
	}

	// Parse AddedAt timestamp, use zero value on failure
	addedAt, _ := time.Parse(time.RFC3339, saved.AddedAt)

	return playlist.LibraryTrack{
		Track:       track,
		AddedAt:     addedAt,
		ReleaseYear: releaseYear(saved.Album.ReleaseDate),
	}
}

// convertSavedTrackMeta converts a Spotify SavedTrack keeping the album
// and duration fields the database stores.
func convertSavedTrackMeta(saved spotify.SavedTrack) SavedTrackMeta {
	addedAt, _ := time.Parse(time.RFC3339, saved.AddedAt)

	return SavedTrackMeta{
		ID:          saved.ID.String(),
		Name:        saved.Name,
		Artist:      joinArtists(saved.Artists),
		Album:       saved.Album.Name,
		AlbumID:     saved.Album.ID.String(),
		AlbumCover:  albumCoverURL(saved.Album),
		DurationMs:  int(saved.Duration),
		Popularity:  int(saved.Popularity),
		ReleaseYear: releaseYear(saved.Album.ReleaseDate),
		AddedAt:     addedAt,
	}
}

func joinArtists(artists []spotify.SimpleArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// albumCoverURL picks the first (largest) album image, if any.
func albumCoverURL(album spotify.SimpleAlbum) string {
	if len(album.Images) == 0 {
		return ""
	}
	return album.Images[0].URL
}

// releaseYear parses the year out of a Spotify release date, which may be
// "2006", "2006-01" or "2006-01-02" depending on release date precision.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
