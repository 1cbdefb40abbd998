package events

import "github.com/atomicstack/face-cluster-labeler/internal/logging"

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) Loaded(count int) {
	logging.Trace("catalog.loaded", map[string]interface{}{"movies": count})
}

func (CatalogTracer) Select(movieID int64, clusterID int) {
	logging.Trace("catalog.select", map[string]interface{}{"movie": movieID, "cluster": clusterID})
}

func (CatalogTracer) Refresh(movieID int64, labeled int) {
	logging.Trace("catalog.refresh", map[string]interface{}{"movie": movieID, "labeled": labeled})
}

func (CatalogTracer) Error(op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("catalog.error", map[string]interface{}{"op": op, "error": err.Error()})
}
