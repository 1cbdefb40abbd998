package state

import (
	"time"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
)

// Phase is the lifecycle stage of the session store.
type Phase int

const (
	// PhaseIdle means no cluster has been requested yet.
	PhaseIdle Phase = iota
	// PhaseLoading means a cluster fetch is outstanding.
	PhaseLoading
	// PhaseReady means a cluster is live and can be mutated.
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "idle"
	}
}

// Ticket identifies one cluster load. Only the latest ticket may apply.
type Ticket uint64

// Cluster is the live cluster owned by the session store.
type Cluster struct {
	MovieID       int64
	ID            int
	Status        label.ClusterStatus
	Images        []label.Image
	SelectedActor *label.ActorID
	LabelTime     *time.Time
	ShowTime      time.Time
	Predicted     []label.ActorID
	Username      string
	Trajectories  int
}

func (c *Cluster) clone() *Cluster {
	if c == nil {
		return nil
	}
	dup := *c
	dup.Images = label.CloneImages(c.Images)
	dup.SelectedActor = label.CloneActorID(c.SelectedActor)
	dup.Predicted = append([]label.ActorID(nil), c.Predicted...)
	if c.LabelTime != nil {
		t := *c.LabelTime
		dup.LabelTime = &t
	}
	return &dup
}

// Flush is an immutable save snapshot of a dirty cluster.
type Flush struct {
	MovieID   int64
	ClusterID int
	Request   label.SaveRequest
}

// SessionOptions configures a SessionStore.
type SessionOptions struct {
	// AllowDeselect makes a user re-selecting the current actor clear the label.
	AllowDeselect bool
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// SessionStore is the state machine for the single live cluster:
// Idle → Loading → Ready(clean) → Ready(dirty) → Loading(next) → …
type SessionStore struct {
	phase         Phase
	movieID       int64
	clusterID     int
	ticket        Ticket
	cluster       *Cluster
	dirty         bool
	actors        []label.Actor
	actorsMovie   int64
	allowDeselect bool
	now           func() time.Time
}

// NewSessionStore creates an idle store.
func NewSessionStore(opts SessionOptions) *SessionStore {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionStore{allowDeselect: opts.AllowDeselect, now: now}
}

// Phase returns the lifecycle stage.
func (s *SessionStore) Phase() Phase {
	return s.phase
}

// Loading reports whether a cluster fetch is outstanding.
func (s *SessionStore) Loading() bool {
	return s.phase != PhaseReady
}

// Dirty reports whether the live cluster has unsent mutations.
func (s *SessionStore) Dirty() bool {
	return s.dirty
}

// AllowDeselect reports the configured toggle-to-null behaviour.
func (s *SessionStore) AllowDeselect() bool {
	return s.allowDeselect
}

// Position returns the movie and cluster the store shows or is loading.
func (s *SessionStore) Position() (int64, int) {
	return s.movieID, s.clusterID
}

// Cluster returns a deep copy of the live cluster.
func (s *SessionStore) Cluster() (*Cluster, bool) {
	if s.cluster == nil {
		return nil, false
	}
	return s.cluster.clone(), true
}

// BeginLoad enters the loading phase for the given position and returns the
// ticket the response must present. The previous cluster is discarded, so
// callers flush before calling BeginLoad.
func (s *SessionStore) BeginLoad(movieID int64, clusterID int) Ticket {
	s.ticket++
	s.phase = PhaseLoading
	s.movieID = movieID
	s.clusterID = clusterID
	s.cluster = nil
	s.dirty = false
	return s.ticket
}

// ApplyCluster installs a fetched cluster. Responses carrying an older ticket
// are stale and ignored. The prior label is applied without marking dirty.
func (s *SessionStore) ApplyCluster(ticket Ticket, payload label.ClusterPayload) bool {
	if ticket != s.ticket || s.phase != PhaseLoading {
		return false
	}
	c := &Cluster{
		MovieID:      s.movieID,
		ID:           s.clusterID,
		Status:       label.ParseClusterStatus(string(payload.Status)),
		Images:       label.CloneImages(payload.Images),
		ShowTime:     s.now(),
		Predicted:    append([]label.ActorID(nil), payload.PredictedActors...),
		Username:     payload.Username,
		Trajectories: payload.Trajectories,
	}
	for i := range c.Images {
		if !c.Images[i].Status.Valid() {
			c.Images[i].Status = label.StatusSame
		}
	}
	if payload.LabelTime != nil {
		t := *payload.LabelTime
		c.LabelTime = &t
	}
	s.cluster = c
	s.phase = PhaseReady
	s.dirty = false
	s.SetSelectedActor(payload.Label, false)
	return true
}

// SetActors stores the roster of movieID. Rosters for a movie that is no
// longer active are dropped.
func (s *SessionStore) SetActors(movieID int64, actors []label.Actor) bool {
	if s.phase != PhaseIdle && movieID != s.movieID {
		return false
	}
	s.actorsMovie = movieID
	s.actors = append([]label.Actor(nil), actors...)
	return true
}

// Actors returns the roster for the active movie in backend order.
func (s *SessionStore) Actors() []label.Actor {
	if s.actorsMovie != s.movieID {
		return nil
	}
	return append([]label.Actor(nil), s.actors...)
}

// Predicted returns the prediction list of the live cluster.
func (s *SessionStore) Predicted() []label.ActorID {
	if s.cluster == nil {
		return nil
	}
	return append([]label.ActorID(nil), s.cluster.Predicted...)
}

// SelectedActor returns the current label, if any.
func (s *SessionStore) SelectedActor() (label.ActorID, bool) {
	if s.cluster == nil || s.cluster.SelectedActor == nil {
		return 0, false
	}
	return *s.cluster.SelectedActor, true
}

// ToggleImageStatus advances the membership status of image index. Indexes
// outside the image list are ignored.
func (s *SessionStore) ToggleImageStatus(index int) (label.MembershipStatus, bool) {
	if s.cluster == nil || index < 0 || index >= len(s.cluster.Images) {
		return "", false
	}
	next := s.cluster.Images[index].Status.Next()
	s.cluster.Images[index].Status = next
	s.dirty = true
	return next, true
}

// SetSelectedActor sets the cluster label. Programmatic application of a
// server label passes markDirty=false and never changes the dirty flag. On the
// user path, re-selecting the current actor clears the label when deselection
// is enabled.
func (s *SessionStore) SetSelectedActor(id *label.ActorID, markDirty bool) bool {
	if s.cluster == nil {
		return false
	}
	next := label.CloneActorID(id)
	current := s.cluster.SelectedActor
	if markDirty && s.allowDeselect && next != nil && current != nil && *next == *current {
		next = nil
	}
	s.cluster.SelectedActor = next
	if markDirty {
		s.dirty = true
	}
	return true
}

// SetClusterStatus sets the cluster verdict. Unknown values reset the status
// to the default.
func (s *SessionStore) SetClusterStatus(raw string) (label.ClusterStatus, bool) {
	if s.cluster == nil {
		return "", false
	}
	status := label.ParseClusterStatus(raw)
	s.cluster.Status = status
	s.dirty = true
	return status, true
}

// PrepareFlush snapshots the live cluster for saving. A clean or missing
// cluster yields false and nothing must be sent. The dirty flag stays set;
// only the next load resets it.
func (s *SessionStore) PrepareFlush() (Flush, bool) {
	if !s.dirty || s.cluster == nil {
		return Flush{}, false
	}
	elapsed := s.now().Sub(s.cluster.ShowTime)
	if elapsed < 0 {
		elapsed = 0
	}
	return Flush{
		MovieID:   s.cluster.MovieID,
		ClusterID: s.cluster.ID,
		Request: label.SaveRequest{
			Label:     label.CloneActorID(s.cluster.SelectedActor),
			Images:    label.CloneImages(s.cluster.Images),
			ElapsedMs: elapsed.Milliseconds(),
			Status:    s.cluster.Status,
		},
	}, true
}
