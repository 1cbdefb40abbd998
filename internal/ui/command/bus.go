package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/face-cluster-labeler/internal/logging/events"
)

// Request encapsulates a user-triggered backend operation.
type Request struct {
	ID    string
	Label string
	Cmd   tea.Cmd
}

// Bus coordinates the execution of UI commands.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
// A request without a command is skipped and yields nil, so callers can pass
// whatever the controller returned.
func (b *Bus) Execute(req Request) tea.Cmd {
	if req.Cmd == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		msg := req.Cmd()
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
