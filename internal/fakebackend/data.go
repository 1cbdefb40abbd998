package fakebackend

import (
	"fmt"

	"github.com/atomicstack/face-cluster-labeler/internal/api"
)

// Dataset seeds a Server.
type Dataset struct {
	Movies   []api.Movie
	Actors   map[int64][]api.Actor
	Clusters map[int64][]api.Cluster
}

type demoMovie struct {
	id     int64
	name   string
	year   int
	fps    float64
	cast   [][2]string
	frames int
}

var demoMovies = []demoMovie{
	{
		id: 121614, name: "The Long Goodbye", year: 1973, fps: 23.976, frames: 4,
		cast: [][2]string{
			{"Elliott Gould", "Philip Marlowe"},
			{"Nina van Pallandt", "Eileen Wade"},
			{"Sterling Hayden", "Roger Wade"},
			{"Mark Rydell", "Marty Augustine"},
			{"Henry Gibson", "Dr. Verringer"},
		},
	},
	{
		id: 93779, name: "Night Moves", year: 1975, fps: 24, frames: 3,
		cast: [][2]string{
			{"Gene Hackman", "Harry Moseby"},
			{"Jennifer Warren", "Paula"},
			{"Susan Clark", "Ellen Moseby"},
		},
	},
}

// clustersPerMovie keeps the demo small enough to page through by hand.
const clustersPerMovie = 12

// Demo returns a deterministic dataset used by `labeler -demo` and tests.
func Demo() Dataset {
	ds := Dataset{
		Actors:   make(map[int64][]api.Actor),
		Clusters: make(map[int64][]api.Cluster),
	}
	for _, dm := range demoMovies {
		ds.Movies = append(ds.Movies, api.Movie{
			ID:           dm.id,
			Name:         dm.name,
			Year:         dm.year,
			ClusterCount: clustersPerMovie,
			FPS:          dm.fps,
		})
		actors := make([]api.Actor, 0, len(dm.cast))
		for i, member := range dm.cast {
			id := dm.id*100 + int64(i+1)
			actors = append(actors, api.Actor{
				ID:   id,
				Name: member[0],
				Role: member[1],
				Images: []string{
					fmt.Sprintf("static/actors/%d/0.jpg", id),
					fmt.Sprintf("static/actors/%d/1.jpg", id),
				},
			})
		}
		ds.Actors[dm.id] = actors

		clusters := make([]api.Cluster, 0, clustersPerMovie)
		for c := 0; c < clustersPerMovie; c++ {
			images := make([]api.Image, 0, dm.frames)
			for f := 0; f < dm.frames; f++ {
				frame := c*250 + f*17
				images = append(images, api.Image{
					URL:          fmt.Sprintf("static/faces/%d/%d/%d.jpg", dm.id, c, f),
					FullFrameURL: fmt.Sprintf("static/frames/%d/%d.jpg", dm.id, frame),
					FrameIndex:   frame,
					Status:       "same",
				})
			}
			var predicted []int64
			if c%3 != 2 {
				predicted = []int64{actors[(c+1)%len(actors)].ID}
			}
			clusters = append(clusters, api.Cluster{
				ClusterID:       c,
				Status:          "labeled",
				Images:          images,
				Trajectories:    1 + c%4,
				PredictedActors: predicted,
			})
		}
		ds.Clusters[dm.id] = clusters
	}
	return ds
}
