package playlist

import (
	"log"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// defaultMoodClusters is the number of mood clusters detected in a library.
const defaultMoodClusters = 3

// clusterFeatures defines the audio features used for mood clustering.
var clusterFeatures = []string{"energy", "valence", "danceability", "acousticness"}

// MoodCluster is a group of library tracks with a similar audio profile.
type MoodCluster struct {
	Name        string
	Description string
	Tracks      []LibraryTrack
	Centroid    map[string]float64 // average feature values for the cluster
}

// trackObservation wraps a LibraryTrack to implement clusters.Observation.
type trackObservation struct {
	track  *LibraryTrack
	coords clusters.Coordinates
}

func (o trackObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o trackObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// ClusterByMood groups library tracks by audio-feature similarity using
// k-means. Tracks missing the clustering features are returned as leftovers,
// as is everything when fewer valid tracks exist than clusters.
func ClusterByMood(tracks []LibraryTrack, numClusters int) ([]MoodCluster, []LibraryTrack) {
	if len(tracks) == 0 {
		return nil, nil
	}
	if numClusters <= 0 {
		numClusters = defaultMoodClusters
	}

	var valid []*LibraryTrack
	var leftovers []LibraryTrack
	for i := range tracks {
		t := &tracks[i]
		if hasClusterFeatures(t) {
			valid = append(valid, t)
		} else {
			leftovers = append(leftovers, *t)
		}
	}

	if len(valid) < numClusters {
		for _, t := range valid {
			leftovers = append(leftovers, *t)
		}
		return nil, leftovers
	}

	var obs clusters.Observations
	for _, t := range valid {
		obs = append(obs, trackObservation{track: t, coords: extractCoordinates(t)})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, numClusters)
	if err != nil {
		log.Printf("Warning: k-means clustering failed: %v", err)
		for _, t := range valid {
			leftovers = append(leftovers, *t)
		}
		return nil, leftovers
	}

	var moodClusters []MoodCluster
	for _, cluster := range result {
		var clusterTracks []LibraryTrack
		for _, o := range cluster.Observations {
			if to, ok := o.(trackObservation); ok {
				clusterTracks = append(clusterTracks, *to.track)
			}
		}
		if len(clusterTracks) == 0 {
			continue
		}

		centroid := make(map[string]float64, len(clusterFeatures))
		for i, name := range clusterFeatures {
			centroid[name] = cluster.Center[i]
		}

		moodClusters = append(moodClusters, MoodCluster{
			Name:        moodClusterName(centroid),
			Description: moodClusterDescription(centroid),
			Tracks:      clusterTracks,
			Centroid:    centroid,
		})
	}

	return moodClusters, leftovers
}

// hasClusterFeatures checks a track for the features needed for clustering.
func hasClusterFeatures(t *LibraryTrack) bool {
	return t.Track.Energy != nil &&
		t.Track.Valence != nil &&
		t.Track.Danceability != nil &&
		t.Track.Acousticness != nil
}

func extractCoordinates(t *LibraryTrack) clusters.Coordinates {
	return clusters.Coordinates{
		*t.Track.Energy,
		*t.Track.Valence,
		*t.Track.Danceability,
		*t.Track.Acousticness,
	}
}

// moodClusterName names a cluster from its centroid using a 2x2
// energy/valence quadrant system with an acousticness modifier.
func moodClusterName(centroid map[string]float64) string {
	energy := centroid["energy"]
	valence := centroid["valence"]
	acousticness := centroid["acousticness"]

	var base string
	highEnergy := energy > 0.6
	highValence := valence > 0.5

	switch {
	case highEnergy && highValence:
		base = "Upbeat Party"
	case highEnergy && !highValence:
		base = "Intense & Dark"
	case !highEnergy && highValence:
		base = "Chill & Happy"
	default:
		base = "Reflective & Melancholy"
	}

	if acousticness > 0.6 {
		return base + " (Acoustic)"
	}
	return base
}

func moodClusterDescription(centroid map[string]float64) string {
	energy := centroid["energy"]
	valence := centroid["valence"]

	switch {
	case energy > 0.6 && valence > 0.5:
		return "High-energy, positive vibes - perfect for dancing and celebrations"
	case energy > 0.6:
		return "Intense, driving energy with darker emotional tones"
	case valence > 0.5:
		return "Relaxed and uplifting - great for unwinding"
	default:
		return "Contemplative and introspective - ideal for quiet moments"
	}
}
