package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTracks(t *testing.T) {
	input := strings.Join([]string{
		"track_id,track_name,artists,track_genre,popularity,danceability,energy,acousticness,valence,tempo",
		"abc123,First Song,Artist One,pop,75,0.8,0.6,0.1,0.9,120.5",
		",No ID Song,\"Artist Two, Artist Three\",rock,50,0.4,not-a-number,0.3,NaN,95",
		"xyz789,,Nameless Artist,jazz,10,0.1,0.2,0.3,0.4,80",
	}, "\n")

	tracks, err := ParseTracks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTracks: %v", err)
	}

	// Row without a track name is skipped.
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	first := tracks[0]
	if first.ID != "abc123" || first.Name != "First Song" || first.Artist != "Artist One" || first.Genre != "pop" {
		t.Errorf("first track = %+v", first)
	}
	if first.Popularity == nil || *first.Popularity != 75 {
		t.Errorf("Popularity = %v, want 75", first.Popularity)
	}
	if first.Tempo == nil || *first.Tempo != 120.5 {
		t.Errorf("Tempo = %v, want 120.5", first.Tempo)
	}

	second := tracks[1]
	if second.ID != "" {
		t.Errorf("ID = %q, want empty", second.ID)
	}
	if second.Artist != "Artist Two, Artist Three" {
		t.Errorf("Artist = %q, want comma-joined names", second.Artist)
	}
	if second.Energy != nil {
		t.Errorf("Energy = %v, want nil for unparseable value", second.Energy)
	}
	if second.Valence != nil {
		t.Errorf("Valence = %v, want nil for NaN value", second.Valence)
	}
	if second.Danceability == nil || *second.Danceability != 0.4 {
		t.Errorf("Danceability = %v, want 0.4", second.Danceability)
	}
}

func TestParseTracksHeaderCaseInsensitive(t *testing.T) {
	input := "Track_Name,Artists,Track_Genre,Energy\nSome Song,Someone,ambient,0.2\n"

	tracks, err := ParseTracks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTracks: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(tracks))
	}
	if tracks[0].Name != "Some Song" || tracks[0].Genre != "ambient" {
		t.Errorf("track = %+v", tracks[0])
	}
	if tracks[0].Energy == nil || *tracks[0].Energy != 0.2 {
		t.Errorf("Energy = %v, want 0.2", tracks[0].Energy)
	}
}

func TestParseLikedSongs(t *testing.T) {
	input := "Name,Artist\nSong One,Artist One\nSong Two,\n,Orphan Artist\n"

	songs, err := ParseLikedSongs(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseLikedSongs: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("got %d songs, want 2 (empty-name row skipped)", len(songs))
	}
	if songs[0].Name != "Song One" || songs[0].Artist != "Artist One" {
		t.Errorf("songs[0] = %+v", songs[0])
	}
	if songs[1].Name != "Song Two" || songs[1].Artist != "" {
		t.Errorf("songs[1] = %+v", songs[1])
	}
}

func TestParseLikedSongsMissingNameColumn(t *testing.T) {
	input := "Title,Artist\nSong One,Artist One\n"

	_, err := ParseLikedSongs(strings.NewReader(input))
	if !errors.Is(err, ErrMissingNameColumn) {
		t.Fatalf("err = %v, want ErrMissingNameColumn", err)
	}
}
