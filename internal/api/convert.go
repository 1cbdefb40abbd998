package api

import (
	"math"
	"time"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
)

// MovieFromWire converts a wire movie.
func MovieFromWire(m Movie) label.Movie {
	return label.Movie{
		ID:                  m.ID,
		Name:                m.Name,
		Year:                m.Year,
		ClusterCount:        m.ClusterCount,
		LabeledClusterCount: m.LabeledClusterCount,
		FPS:                 m.FPS,
	}
}

// MoviesFromWire converts a list of wire movies.
func MoviesFromWire(movies []Movie) []label.Movie {
	out := make([]label.Movie, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieFromWire(m))
	}
	return out
}

// MovieToWire converts a domain movie back to its wire form.
func MovieToWire(m label.Movie) Movie {
	return Movie{
		ID:                  m.ID,
		Name:                m.Name,
		Year:                m.Year,
		ClusterCount:        m.ClusterCount,
		LabeledClusterCount: m.LabeledClusterCount,
		FPS:                 m.FPS,
	}
}

// ActorsFromWire converts the roster.
func ActorsFromWire(actors []Actor) []label.Actor {
	out := make([]label.Actor, 0, len(actors))
	for _, a := range actors {
		out = append(out, label.Actor{
			ID:     label.ActorID(a.ID),
			Name:   a.Name,
			Role:   a.Role,
			Age:    a.Age,
			Images: append([]string(nil), a.Images...),
		})
	}
	return out
}

// ImageFromWire converts one image. The legacy approved flag is honoured
// when no status is present.
func ImageFromWire(img Image) label.Image {
	status := label.ParseMembershipStatus(img.Status)
	if img.Status == "" && img.Approved != nil {
		status = label.MembershipFromApproved(*img.Approved)
	}
	return label.Image{
		URL:          img.URL,
		FullFrameURL: img.FullFrameURL,
		FrameIndex:   img.FrameIndex,
		Status:       status,
	}
}

// ImageToWire converts one image for a save request.
func ImageToWire(img label.Image) Image {
	return Image{
		URL:          img.URL,
		FullFrameURL: img.FullFrameURL,
		Status:       string(img.Status),
		FrameIndex:   img.FrameIndex,
	}
}

// ClusterFromWire converts a cluster response.
func ClusterFromWire(c Cluster) label.ClusterPayload {
	images := make([]label.Image, 0, len(c.Images))
	for _, img := range c.Images {
		images = append(images, ImageFromWire(img))
	}
	predicted := make([]label.ActorID, 0, len(c.PredictedActors))
	for _, id := range c.PredictedActors {
		predicted = append(predicted, label.ActorID(id))
	}
	payload := label.ClusterPayload{
		Username:        c.Username,
		Status:          label.ParseClusterStatus(c.Status),
		Images:          images,
		PredictedActors: predicted,
		Trajectories:    c.Trajectories,
	}
	if c.Label != nil {
		payload.Label = label.Ptr(label.ActorID(*c.Label))
	}
	if c.LabelTime != nil {
		payload.LabelTime = epochToTime(*c.LabelTime)
	}
	return payload
}

// SaveFromDomain converts an immutable save snapshot into its wire body.
func SaveFromDomain(req label.SaveRequest) SaveCluster {
	images := make([]Image, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, ImageToWire(img))
	}
	body := SaveCluster{
		Images: images,
		Time:   req.ElapsedMs,
		Status: string(label.ParseClusterStatus(string(req.Status))),
	}
	if req.Label != nil {
		v := int64(*req.Label)
		body.Label = &v
	}
	return body
}

// epochToTime converts fractional epoch seconds to a time.
func epochToTime(seconds float64) *time.Time {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return nil
	}
	whole, frac := math.Modf(seconds)
	t := time.Unix(int64(whole), int64(frac*float64(time.Second)))
	return &t
}
