// Package label holds the domain types shared by the labeling client: movies,
// actors, clusters and the two status enumerations that drive labeling.
package label

import (
	"strings"
	"time"
)

// Movie describes one movie available for labeling. Everything except
// LabeledClusterCount is fixed once fetched.
type Movie struct {
	ID                  int64
	Name                string
	Year                int
	ClusterCount        int
	LabeledClusterCount int
	FPS                 float64
}

// Progress returns the share of labeled clusters as a percentage.
func (m Movie) Progress() float64 {
	if m.ClusterCount <= 0 {
		return 0
	}
	return float64(m.LabeledClusterCount) / float64(m.ClusterCount) * 100
}

// ActorID identifies an actor. It doubles as the cluster label.
type ActorID int64

// Actor is a roster entry for a movie.
type Actor struct {
	ID     ActorID
	Name   string
	Role   string
	Age    *int
	Images []string
}

// Image is one face detection shown for a cluster.
type Image struct {
	URL          string
	FullFrameURL string
	FrameIndex   int
	Status       MembershipStatus
}

// ClusterPayload is the result of fetching one cluster.
type ClusterPayload struct {
	Username        string
	Status          ClusterStatus
	Images          []Image
	Label           *ActorID
	LabelTime       *time.Time
	PredictedActors []ActorID
	Trajectories    int
}

// SaveRequest is the immutable body submitted when a dirty cluster is saved.
type SaveRequest struct {
	Label     *ActorID
	Images    []Image
	ElapsedMs int64
	Status    ClusterStatus
}

// CloneImages returns an independent copy of images.
func CloneImages(images []Image) []Image {
	if images == nil {
		return nil
	}
	dup := make([]Image, len(images))
	copy(dup, images)
	return dup
}

// CloneActorID returns a copy of id so callers never share the pointer.
func CloneActorID(id *ActorID) *ActorID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Ptr is a small helper for optional actor ids.
func Ptr(id ActorID) *ActorID {
	return &id
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
