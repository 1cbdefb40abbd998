// Package ui contains the Bubble Tea program that powers the cluster labeler.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, hover previews, rendering,
// and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse motion, controller results, backend polls).
//   - Key handling (internal/ui/navigation.go) moves between clusters, panes
//     and list rows. Filter helpers (internal/ui/input.go) keep roster search
//     isolated from the event loop.
//   - Mouse motion is hit-tested against the regions of the last layout
//     (internal/ui/hover.go) and turned into overlay enter/leave calls.
//
// State ownership:
//   - Domain state lives in internal/state: the movie catalog, the session
//     store holding the live cluster, and the overlay store for previews.
//   - List state (cursor, filter, viewport) for the three panes lives in
//     internal/ui/state.Level.
//   - All backend traffic goes through nav.Controller, whose commands are run
//     via the internal/ui/command bus so every request is traced.
//
// Backend interactions:
//   - A backend.Watcher re-polls the movie catalog; Update waits for those
//     events and hands them to the dispatcher, which refreshes the catalog.
//   - Cluster loads and saves come back as nav messages. Their handlers apply
//     the result to the stores and resync the panes.
package ui
