package events

import "github.com/atomicstack/face-cluster-labeler/internal/logging"

type OverlayTracer struct{}

var Overlay = OverlayTracer{}

func (OverlayTracer) Enter(title string, count int) {
	logging.Trace("overlay.enter", map[string]interface{}{"title": title, "count": count})
}

func (OverlayTracer) Leave(count int) {
	logging.Trace("overlay.leave", map[string]interface{}{"count": count})
}

func (OverlayTracer) Key(key string, down bool) {
	logging.Trace("overlay.key", map[string]interface{}{"key": key, "down": down})
}
