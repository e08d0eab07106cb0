package sync

import (
	"testing"
	"time"

	"github.com/dlofaro/spotify-genie/internal/db"
	"github.com/dlofaro/spotify-genie/internal/spotify"
)

func TestMetaToTrack(t *testing.T) {
	added := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)
	meta := spotify.SavedTrackMeta{
		ID:          "abc123",
		Name:        "Some Song",
		Artist:      "Some Artist",
		Album:       "Some Album",
		AlbumID:     "album1",
		AlbumCover:  "https://img.example/cover.jpg",
		DurationMs:  215000,
		Popularity:  64,
		ReleaseYear: 2018,
		AddedAt:     added,
	}

	track := metaToTrack(meta)

	if track.ID != "abc123" || track.Name != "Some Song" || track.Artist != "Some Artist" {
		t.Errorf("unexpected identity fields: %+v", track)
	}
	if track.Album == nil || *track.Album != "Some Album" {
		t.Errorf("Album = %v, want Some Album", track.Album)
	}
	if track.AlbumCover == nil || *track.AlbumCover != "https://img.example/cover.jpg" {
		t.Errorf("AlbumCover = %v, want cover URL", track.AlbumCover)
	}
	if track.DurationMs == nil || *track.DurationMs != 215000 {
		t.Errorf("DurationMs = %v, want 215000", track.DurationMs)
	}
	if track.Popularity == nil || *track.Popularity != 64 {
		t.Errorf("Popularity = %v, want 64", track.Popularity)
	}
	if track.ReleaseYear == nil || *track.ReleaseYear != 2018 {
		t.Errorf("ReleaseYear = %v, want 2018", track.ReleaseYear)
	}
	if track.Energy != nil {
		t.Error("Energy should be nil before a feature sync")
	}
}

func TestMetaToTrackUnknownReleaseYear(t *testing.T) {
	track := metaToTrack(spotify.SavedTrackMeta{ID: "x", Name: "No Year"})
	if track.ReleaseYear != nil {
		t.Errorf("ReleaseYear = %v, want nil", track.ReleaseYear)
	}
}

func TestTrackToLibrary(t *testing.T) {
	energy := 0.8
	valence := 0.3
	popularity := 71
	cover := "https://img.example/c.jpg"
	year := 2012
	added := time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)

	row := db.Track{
		ID:          "t1",
		Name:        "Row Song",
		Artist:      "Row Artist",
		AlbumCover:  &cover,
		Popularity:  &popularity,
		ReleaseYear: &year,
		Energy:      &energy,
		Valence:     &valence,
	}

	lt := trackToLibrary(row, added)

	if lt.Track.ID != "t1" || lt.Track.Name != "Row Song" || lt.Track.Artist != "Row Artist" {
		t.Errorf("unexpected identity fields: %+v", lt.Track)
	}
	if lt.Track.AlbumCover != cover {
		t.Errorf("AlbumCover = %q, want %q", lt.Track.AlbumCover, cover)
	}
	if lt.Track.Popularity == nil || *lt.Track.Popularity != 71.0 {
		t.Errorf("Popularity = %v, want 71.0", lt.Track.Popularity)
	}
	if lt.Track.Energy == nil || *lt.Track.Energy != 0.8 {
		t.Errorf("Energy = %v, want 0.8", lt.Track.Energy)
	}
	if lt.Track.Danceability != nil {
		t.Error("Danceability should stay nil when the row has none")
	}
	if lt.ReleaseYear != 2012 {
		t.Errorf("ReleaseYear = %d, want 2012", lt.ReleaseYear)
	}
	if !lt.AddedAt.Equal(added) {
		t.Errorf("AddedAt = %v, want %v", lt.AddedAt, added)
	}
}

func TestTrackToLibraryNilOptionals(t *testing.T) {
	lt := trackToLibrary(db.Track{ID: "t2", Name: "Bare"}, time.Time{})
	if lt.Track.AlbumCover != "" {
		t.Errorf("AlbumCover = %q, want empty", lt.Track.AlbumCover)
	}
	if lt.Track.Popularity != nil {
		t.Error("Popularity should be nil")
	}
	if lt.ReleaseYear != 0 {
		t.Errorf("ReleaseYear = %d, want 0", lt.ReleaseYear)
	}
}
