package playlist

import (
	"math"
	"testing"

	"github.com/dlofaro/spotify-genie/internal/recommend"
)

func ptr(v float64) *float64 {
	return &v
}

func TestUpbeatTempo(t *testing.T) {
	tests := []struct {
		name  string
		tempo float64
		want  float64
	}{
		{"below range", 30, 0},
		{"above range", 210, 0},
		{"lower bound", 40, 0},
		{"peak range low edge", 110, 1},
		{"inside peak range", 128, 1},
		{"peak range high edge", 150, 1},
		{"slow ramps up", 75, 0.5},
		{"fast ramps down", 175, 0.5},
		{"upper bound", 200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := upbeatTempo(tt.tempo)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("upbeatTempo(%g) = %g, want %g", tt.tempo, got, tt.want)
			}
		})
	}
}

func TestUpbeatLoudness(t *testing.T) {
	tests := []struct {
		name     string
		loudness float64
		want     float64
	}{
		{"below range", -70, 0},
		{"above range", 1, 0},
		{"ideal range", -10, 1},
		{"ideal low edge", -15, 1},
		{"ideal high edge", -5, 1},
		{"quiet ramps up", -37.5, 0.5},
		{"loud ramps down", -2.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := upbeatLoudness(tt.loudness)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("upbeatLoudness(%g) = %g, want %g", tt.loudness, got, tt.want)
			}
		})
	}
}

func TestLinearTempo(t *testing.T) {
	tests := []struct {
		name  string
		tempo float64
		want  float64
	}{
		{"below range", 30, 0},
		{"lower bound", 40, 0},
		{"midpoint", 120, 0.5},
		{"upper bound", 200, 1},
		{"above range", 220, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linearTempo(tt.tempo)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("linearTempo(%g) = %g, want %g", tt.tempo, got, tt.want)
			}
		})
	}
}

func TestMoodScoreValues(t *testing.T) {
	track := recommend.Track{
		Name:             "Fixture",
		Valence:          ptr(0.6),
		Energy:           ptr(0.8),
		Danceability:     ptr(0.7),
		Acousticness:     ptr(0.1),
		Liveness:         ptr(0.2),
		Instrumentalness: ptr(0.0),
		Speechiness:      ptr(0.05),
		Tempo:            ptr(180),
		Loudness:         ptr(-4),
		Mode:             ptr(1),
	}

	// Each mood normalizes tempo and loudness its own way: happy uses the
	// 110-150 BPM / -15..-5 dB windows, sad and chill scale (tempo-40)/160
	// with chill adding (loudness+60)/60, hype uses tempo/180 and
	// (loudness+30)/30.
	tests := []struct {
		mood Mood
		want float64
	}{
		{MoodHappy, 0.665},
		{MoodSad, 0.2875},
		{MoodChill, 0.23125},
		{MoodHype, 0.77},
	}

	for _, tt := range tests {
		t.Run(string(tt.mood), func(t *testing.T) {
			got := moodScore(track, tt.mood)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("moodScore(%s) = %g, want %g", tt.mood, got, tt.want)
			}
		})
	}
}

func TestMoodScoreHypeFavorsFastLoud(t *testing.T) {
	base := recommend.Track{
		Energy:       ptr(0.8),
		Danceability: ptr(0.7),
		Liveness:     ptr(0.2),
		Acousticness: ptr(0.1),
		Valence:      ptr(0.6),
	}

	fast := base
	fast.Tempo = ptr(195)
	fast.Loudness = ptr(-2)

	mid := base
	mid.Tempo = ptr(130)
	mid.Loudness = ptr(-10)

	// The happy-mood tempo window would rank the fast, loud track below the
	// moderate one; the hype normalizers must not.
	if fs, ms := moodScore(fast, MoodHype), moodScore(mid, MoodHype); fs <= ms {
		t.Errorf("hype score: fast loud track %g <= moderate track %g", fs, ms)
	}
}

func TestMoodScoreOrdering(t *testing.T) {
	happy := recommend.Track{
		Name:         "Happy Track",
		Valence:      ptr(0.95),
		Energy:       ptr(0.8),
		Danceability: ptr(0.85),
		Tempo:        ptr(125),
		Mode:         ptr(1),
		Loudness:     ptr(-7),
		Liveness:     ptr(0.3),
		Acousticness: ptr(0.1),
	}
	sad := recommend.Track{
		Name:             "Sad Track",
		Valence:          ptr(0.1),
		Energy:           ptr(0.2),
		Danceability:     ptr(0.2),
		Tempo:            ptr(65),
		Mode:             ptr(0),
		Loudness:         ptr(-25),
		Liveness:         ptr(0.1),
		Acousticness:     ptr(0.9),
		Instrumentalness: ptr(0.7),
		Speechiness:      ptr(0.05),
	}

	if hs, ss := moodScore(happy, MoodHappy), moodScore(sad, MoodHappy); hs <= ss {
		t.Errorf("happy score: happy track %g <= sad track %g", hs, ss)
	}
	if hs, ss := moodScore(happy, MoodSad), moodScore(sad, MoodSad); hs >= ss {
		t.Errorf("sad score: happy track %g >= sad track %g", hs, ss)
	}
	if hs, ss := moodScore(happy, MoodHype), moodScore(sad, MoodHype); hs <= ss {
		t.Errorf("hype score: happy track %g <= sad track %g", hs, ss)
	}
	if hs, ss := moodScore(happy, MoodChill), moodScore(sad, MoodChill); hs >= ss {
		t.Errorf("chill score: loud happy track %g >= quiet acoustic track %g", hs, ss)
	}
}

func TestMoodScoreMissingFeaturesUseDefaults(t *testing.T) {
	bare := recommend.Track{Name: "Bare"}
	score := moodScore(bare, MoodHappy)
	if math.IsNaN(score) || score <= 0 || score >= 1 {
		t.Errorf("score for featureless track = %g, want a value in (0, 1)", score)
	}
}

func TestMoodGate(t *testing.T) {
	low := recommend.Track{Valence: ptr(0.3)}
	high := recommend.Track{Valence: ptr(0.8)}

	if moodGate(low, MoodHappy) {
		t.Error("happy gate passed a low-valence track")
	}
	if !moodGate(high, MoodHappy) {
		t.Error("happy gate rejected a high-valence track")
	}
	// Only happy carries a gate.
	if !moodGate(low, MoodSad) || !moodGate(low, MoodChill) || !moodGate(low, MoodHype) {
		t.Error("non-happy moods must not gate")
	}
}

func TestMoodCategory(t *testing.T) {
	tests := []struct {
		mood  Mood
		score float64
		want  string
	}{
		{MoodHappy, 0.85, "Euphoric"},
		{MoodHappy, 0.62, "Cheerful"},
		{MoodHappy, 0.1, "Happy"},
		{MoodSad, 0.9, "Heartbreaking"},
		{MoodSad, 0.5, "Sad"},
		{MoodChill, 0.86, "Zen-Master"},
		{MoodChill, 0.2, "Chill"},
		{MoodHype, 0.91, "Explosive"},
		{MoodHype, 0.3, "Energetic"},
	}

	for _, tt := range tests {
		if got := moodCategory(tt.mood, tt.score); got != tt.want {
			t.Errorf("moodCategory(%s, %g) = %q, want %q", tt.mood, tt.score, got, tt.want)
		}
	}
}
