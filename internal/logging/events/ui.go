package events

import "github.com/atomicstack/face-cluster-labeler/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type NavTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Nav     = NavTracer{}
	Command = CommandTracer{}
)

func (UITracer) Focus(pane string) {
	logging.Trace("ui.focus", map[string]interface{}{"pane": pane})
}

func (UITracer) Cursor(pane string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"pane": pane, "cursor": cursor})
}

func (NavTracer) Move(from, to, delta int, dirty bool) {
	logging.Trace("nav.move", map[string]interface{}{"from": from, "to": to, "delta": delta, "dirty": dirty})
}

func (NavTracer) Ignored(key string) {
	logging.Trace("nav.ignored", map[string]interface{}{"key": key})
}

func (FilterTracer) Cleared(pane string) {
	logging.Trace("filter.clear", map[string]interface{}{"pane": pane})
}

func (FilterTracer) Append(pane, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"pane": pane, "filter": filter})
}

func (FilterTracer) Backspace(pane, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"pane": pane, "filter": filter})
}

func (FilterTracer) WordBackspace(pane, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"pane": pane, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (UITracer) Click(region string) {
	logging.Trace("ui.click", map[string]interface{}{"region": region})
}

func (FilterTracer) Cursor(pane string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"pane": pane, "pos": pos})
}

func (FilterTracer) CursorWord(pane string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"pane": pane, "pos": pos})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}
