package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlaylistRepository handles generated-playlist database operations.
type PlaylistRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new playlist with its tracks in order.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *Playlist, trackIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO playlists (id, user_id, name, type, spotify_id, track_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	playlist.TrackCount = len(trackIDs)
	err = tx.QueryRow(ctx, query,
		playlist.ID,
		playlist.UserID,
		playlist.Name,
		playlist.Type,
		playlist.SpotifyID,
		playlist.TrackCount,
	).Scan(&playlist.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting playlist: %w", err)
	}

	if len(trackIDs) > 0 {
		tracksQuery := `
			INSERT INTO playlist_tracks (playlist_id, track_id, position)
			SELECT $1, id, pos FROM unnest($2::text[]) WITH ORDINALITY AS t(id, pos)
		`
		_, err = tx.Exec(ctx, tracksQuery, playlist.ID, trackIDs)
		if err != nil {
			return fmt.Errorf("inserting playlist tracks: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a playlist by ID.
func (r *PlaylistRepository) Get(ctx context.Context, id uuid.UUID) (*Playlist, error) {
	query := `
		SELECT id, user_id, name, type, spotify_id, track_count, created_at
		FROM playlists
		WHERE id = $1
	`
	var p Playlist
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Type,
		&p.SpotifyID,
		&p.TrackCount,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying playlist: %w", err)
	}
	return &p, nil
}

// GetForUser retrieves all playlists for a user, newest first.
func (r *PlaylistRepository) GetForUser(ctx context.Context, userID string) ([]Playlist, error) {
	query := `
		SELECT id, user_id, name, type, spotify_id, track_count, created_at
		FROM playlists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user playlists: %w", err)
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Type,
			&p.SpotifyID,
			&p.TrackCount,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// GetTracks retrieves all tracks for a playlist in playlist order.
func (r *PlaylistRepository) GetTracks(ctx context.Context, playlistID uuid.UUID) ([]Track, error) {
	query := `
		SELECT ` + qualifyTrackColumns("t") + `
		FROM tracks t
		JOIN playlist_tracks pt ON t.id = pt.track_id
		WHERE pt.playlist_id = $1
		ORDER BY pt.position
	`
	rows, err := r.pool.Query(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("querying playlist tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning track: %w", err)
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// UpdateSpotifyID sets the Spotify playlist ID once a playlist has been
// saved to the user's account.
func (r *PlaylistRepository) UpdateSpotifyID(ctx context.Context, id uuid.UUID, spotifyID string) error {
	query := `UPDATE playlists SET spotify_id = $2 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, spotifyID)
	if err != nil {
		return fmt.Errorf("updating spotify playlist ID: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a playlist by ID.
func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM playlists WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting playlist: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteForUser removes all playlists for a user.
func (r *PlaylistRepository) DeleteForUser(ctx context.Context, userID string) error {
	query := `DELETE FROM playlists WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("deleting user playlists: %w", err)
	}
	return nil
}
