package events

import "github.com/atomicstack/face-cluster-labeler/internal/logging"

type ClusterTracer struct{}

var Cluster = ClusterTracer{}

func (ClusterTracer) LoadStart(movieID int64, clusterID int, ticket uint64) {
	logging.Trace("cluster.load.start", map[string]interface{}{"movie": movieID, "cluster": clusterID, "ticket": ticket})
}

func (ClusterTracer) Loaded(movieID int64, clusterID int, images int) {
	logging.Trace("cluster.load.done", map[string]interface{}{"movie": movieID, "cluster": clusterID, "images": images})
}

func (ClusterTracer) Stale(movieID int64, clusterID int, ticket uint64) {
	logging.Trace("cluster.load.stale", map[string]interface{}{"movie": movieID, "cluster": clusterID, "ticket": ticket})
}

func (ClusterTracer) LoadFailed(movieID int64, clusterID int, err error) {
	logging.Trace("cluster.load.error", map[string]interface{}{"movie": movieID, "cluster": clusterID, "error": errString(err)})
}

func (ClusterTracer) ToggleImage(index int, status string) {
	logging.Trace("cluster.image.toggle", map[string]interface{}{"index": index, "status": status})
}

func (ClusterTracer) SelectActor(actor interface{}, dirty bool) {
	logging.Trace("cluster.actor.select", map[string]interface{}{"actor": actor, "dirty": dirty})
}

func (ClusterTracer) Status(status string) {
	logging.Trace("cluster.status", map[string]interface{}{"status": status})
}

func (ClusterTracer) FlushSkipped(movieID int64, clusterID int) {
	logging.Trace("cluster.flush.skip", map[string]interface{}{"movie": movieID, "cluster": clusterID})
}

func (ClusterTracer) Save(movieID int64, clusterID int, images int, elapsedMs int64) {
	logging.Trace("cluster.save", map[string]interface{}{"movie": movieID, "cluster": clusterID, "images": images, "elapsedMs": elapsedMs})
}

func (ClusterTracer) Saved(movieID int64, clusterID int) {
	logging.Trace("cluster.save.done", map[string]interface{}{"movie": movieID, "cluster": clusterID})
}

func (ClusterTracer) SaveFailed(movieID int64, clusterID int, err error) {
	logging.Trace("cluster.save.error", map[string]interface{}{"movie": movieID, "cluster": clusterID, "error": errString(err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
