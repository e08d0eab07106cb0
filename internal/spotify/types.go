package spotify

import "time"

// SavedTrackMeta contains complete track metadata from Spotify.
// Used for syncing the listening library to the database.
type SavedTrackMeta struct {
	ID          string
	Name        string
	Artist      string // Comma-separated artist names
	Album       string
	AlbumID     string
	AlbumCover  string
	DurationMs  int
	Popularity  int
	ReleaseYear int
	AddedAt     time.Time // When user saved the track
}
