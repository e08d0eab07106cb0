// Package playlist builds themed playlists from recommendation engine output
// and from a user's library tracks.
package playlist

import (
	"math"

	"github.com/dlofaro/spotify-genie/internal/recommend"
)

// Mood identifies a mood-themed playlist.
type Mood string

const (
	MoodHappy Mood = "happy"
	MoodSad   Mood = "sad"
	MoodChill Mood = "chill"
	MoodHype  Mood = "hype"
)

// moodScore computes a weighted 0..1 score for how well a track fits a mood.
// Weights follow the mood definitions: valence dominates happy and sad,
// low energy and acousticness dominate chill, energy and tempo dominate hype.
// Tempo and loudness normalization differs per mood: happy prefers a moderate
// window, sad and chill scale linearly over the typical ranges, hype rewards
// raw speed and loudness.
func moodScore(t recommend.Track, mood Mood) float64 {
	valence := featureOr(t.Valence, 0.5)
	energy := featureOr(t.Energy, 0.5)
	danceability := featureOr(t.Danceability, 0.5)
	acousticness := featureOr(t.Acousticness, 0.5)
	liveness := featureOr(t.Liveness, 0.5)
	instrumentalness := featureOr(t.Instrumentalness, 0.5)
	speechiness := featureOr(t.Speechiness, 0.5)
	tempo := featureOr(t.Tempo, 120)
	loudness := featureOr(t.Loudness, -10)
	mode := featureOr(t.Mode, 0)

	switch mood {
	case MoodHappy:
		// Major mode sounds happier than minor.
		normMode := 0.4
		if mode == 1 {
			normMode = 1.0
		}
		return valence*0.35 +
			energy*0.20 +
			danceability*0.15 +
			upbeatTempo(tempo)*0.10 +
			normMode*0.10 +
			upbeatLoudness(loudness)*0.05 +
			liveness*0.05
	case MoodSad:
		return (1-valence)*0.35 +
			(1-energy)*0.20 +
			(1-danceability)*0.15 +
			(1-linearTempo(tempo))*0.10 +
			acousticness*0.10 +
			(1-liveness)*0.05 +
			instrumentalness*0.05
	case MoodChill:
		return (1-energy)*0.25 +
			acousticness*0.20 +
			(1-linearTempo(tempo))*0.15 +
			(1-clamp01((loudness+60)/60))*0.15 +
			instrumentalness*0.10 +
			(1-liveness)*0.05 +
			(1-speechiness)*0.05 +
			(1-math.Abs(valence-0.5))*0.05
	case MoodHype:
		return energy*0.30 +
			clamp01(tempo/180)*0.20 +
			clamp01((loudness+30)/30)*0.15 +
			danceability*0.15 +
			liveness*0.10 +
			(1-acousticness)*0.05 +
			valence*0.05
	}
	return 0
}

// moodGate is a hard pre-filter applied before ranking by mood score.
// Only happy carries one; when too few tracks pass, the caller falls back to
// the ungated pool.
func moodGate(t recommend.Track, mood Mood) bool {
	if mood != MoodHappy {
		return true
	}
	return featureOr(t.Valence, 0.5) > 0.5
}

// category maps a mood score to a descriptive label for display.
type category struct {
	threshold float64
	label     string
}

var moodCategories = map[Mood][]category{
	MoodHappy: {
		{0.80, "Euphoric"},
		{0.75, "Ecstatic"},
		{0.70, "Joyful"},
		{0.65, "Uplifting"},
		{0.60, "Cheerful"},
		{0, "Happy"},
	},
	MoodSad: {
		{0.85, "Heartbreaking"},
		{0.75, "Melancholic"},
		{0.65, "Wistful"},
		{0.55, "Somber"},
		{0.45, "Sad"},
		{0, "Slightly Sad"},
	},
	MoodChill: {
		{0.85, "Zen-Master"},
		{0.75, "Ultra-Relaxed"},
		{0.65, "Super-Chill"},
		{0.55, "Laid-Back"},
		{0.45, "Mellow"},
		{0, "Chill"},
	},
	MoodHype: {
		{0.90, "Explosive"},
		{0.85, "Electrifying"},
		{0.80, "Supercharged"},
		{0.75, "High-Octane"},
		{0.70, "High-Voltage"},
		{0, "Energetic"},
	},
}

// moodCategory returns the descriptive label for a mood score.
func moodCategory(mood Mood, score float64) string {
	for _, c := range moodCategories[mood] {
		if score >= c.threshold {
			return c.label
		}
	}
	return ""
}

// upbeatTempo maps BPM to 0..1 with peak preference at 110-150 BPM.
// Tempos outside the typical 40-200 range score 0.
func upbeatTempo(tempo float64) float64 {
	if tempo < 40 || tempo > 200 {
		return 0
	}
	var n float64
	switch {
	case tempo >= 110 && tempo <= 150:
		n = 1
	case tempo < 110:
		n = (tempo - 40) / 70
	default:
		n = 1 - (tempo-150)/50
	}
	return clamp01(n)
}

// upbeatLoudness maps dB (typically -60..0) to 0..1 with peak preference
// at -15 to -5 dB. Values outside the range score 0.
func upbeatLoudness(loudness float64) float64 {
	if loudness < -60 || loudness > 0 {
		return 0
	}
	var n float64
	switch {
	case loudness >= -15 && loudness <= -5:
		n = 1
	case loudness < -15:
		n = (loudness + 60) / 45
	default:
		n = 1 - (loudness+5)/5
	}
	return clamp01(n)
}

// linearTempo maps BPM linearly onto 0..1 over the typical 40-200 range.
func linearTempo(tempo float64) float64 {
	return clamp01((tempo - 40) / 160)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func featureOr(p *float64, fallback float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return fallback
	}
	return *p
}
