package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a Spotify user profile together with their library sync
// state.
type User struct {
	ID           string
	DisplayName  string
	SyncedTracks int // saved tracks persisted on the last library sync
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSyncAt   *time.Time // nullable
}

// Session represents an authenticated web session. AnonID records the
// anonymous browser ID the session was promoted from, if any, so engine
// state built before login can be traced back.
type Session struct {
	ID           string
	UserID       string
	AnonID       *string // nullable
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Track represents a Spotify track with its audio features.
// Feature columns are nullable since Spotify does not provide audio
// features for every track.
type Track struct {
	ID          string
	Name        string
	Artist      string
	Album       *string // nullable
	AlbumID     *string // nullable
	AlbumCover  *string // nullable
	DurationMs  *int    // nullable
	Popularity  *int    // nullable
	ReleaseYear *int    // nullable

	Danceability     *float64
	Energy           *float64
	Acousticness     *float64
	Valence          *float64
	Tempo            *float64
	Loudness         *float64
	Liveness         *float64
	Instrumentalness *float64
	Speechiness      *float64
	Mode             *float64

	CreatedAt time.Time
}

// UserTrack represents a user's saved track with timestamp.
type UserTrack struct {
	UserID  string
	TrackID string
	AddedAt time.Time
}

// Playlist represents a generated playlist.
type Playlist struct {
	ID         uuid.UUID
	UserID     string
	Name       string
	Type       string  // playlist type slug, e.g. "mood-happy"
	SpotifyID  *string // nullable - Spotify playlist ID if saved
	TrackCount int
	CreatedAt  time.Time
}

// PlaylistTrack represents a track belonging to a generated playlist.
type PlaylistTrack struct {
	PlaylistID uuid.UUID
	TrackID    string
	Position   int
}
