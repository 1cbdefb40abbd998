package api

// Movie is the wire form of a movie entry.
type Movie struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Year                int     `json:"year"`
	ClusterCount        int     `json:"n_clusters"`
	LabeledClusterCount int     `json:"n_labeled_clusters"`
	FPS                 float64 `json:"fps"`
}

// Actor is the wire form of a roster entry.
type Actor struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Age         *int     `json:"age,omitempty"`
	Images      []string `json:"images,omitempty"`
	MovieCount  int      `json:"movie_count,omitempty"`
	GlobalCount int      `json:"global_count,omitempty"`
}

// Image is the wire form of one face image.
type Image struct {
	URL          string `json:"url"`
	FullFrameURL string `json:"full_frame_url,omitempty"`
	Status       string `json:"status,omitempty"`
	FrameIndex   int    `json:"frame_index"`
	Approved     *bool  `json:"approved,omitempty"`
}

// Cluster is the GET faces/clusters response.
type Cluster struct {
	Username        string   `json:"username,omitempty"`
	ClusterID       int      `json:"cluster_id"`
	Label           *int64   `json:"label"`
	LabelTime       *float64 `json:"label_time"`
	Status          string   `json:"status"`
	Images          []Image  `json:"images"`
	Trajectories    int      `json:"n_trajectories"`
	PredictedActors []int64  `json:"predicted_actors"`
}

// SaveCluster is the POST faces/clusters body.
type SaveCluster struct {
	Label  *int64  `json:"label"`
	Images []Image `json:"images"`
	Time   int64   `json:"time"`
	Status string  `json:"status"`
}

// Ack is the POST acknowledgement.
type Ack struct {
	Status string `json:"status"`
}

// ErrorBody is returned by the backend alongside 5xx responses.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
