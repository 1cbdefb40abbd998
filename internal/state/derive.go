package state

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/atomicstack/face-cluster-labeler/internal/label"
)

// RosterEntry is one actor as the roster renders it.
type RosterEntry struct {
	Actor     label.Actor
	Predicted bool
	Selected  bool
}

// RosterView orders actors predicted-first. Both partitions keep backend
// order. An empty prediction list flags nobody.
func RosterView(actors []label.Actor, predicted []label.ActorID, selected *label.ActorID) []RosterEntry {
	hits := make(map[label.ActorID]bool, len(predicted))
	for _, id := range predicted {
		hits[id] = true
	}
	entries := make([]RosterEntry, 0, len(actors))
	var rest []RosterEntry
	for _, actor := range actors {
		entry := RosterEntry{
			Actor:     actor,
			Predicted: hits[actor.ID],
			Selected:  selected != nil && *selected == actor.ID,
		}
		if entry.Predicted {
			entries = append(entries, entry)
			continue
		}
		rest = append(rest, entry)
	}
	return append(entries, rest...)
}

// MovieRow is one sidebar entry.
type MovieRow struct {
	Movie    label.Movie
	Title    string
	Progress string
	Selected bool
}

// MovieRows builds the sidebar rows. selected is 0 when nothing is chosen.
func MovieRows(movies []label.Movie, selected int64) []MovieRow {
	rows := make([]MovieRow, 0, len(movies))
	for _, movie := range movies {
		title := movie.Name
		if movie.Year > 0 {
			title = fmt.Sprintf("%s (%d)", movie.Name, movie.Year)
		}
		rows = append(rows, MovieRow{
			Movie:    movie,
			Title:    title,
			Progress: fmt.Sprintf("Labeled clusters: %.1f%%", movie.Progress()),
			Selected: selected != 0 && movie.ID == selected,
		})
	}
	return rows
}

// ClusterHeading renders the 1-indexed position of a cluster.
func ClusterHeading(clusterID, count int) string {
	return fmt.Sprintf("Cluster %d / %d", clusterID+1, count)
}

// LabelTimeMessage describes when the cluster was last saved. The date is
// omitted for saves made on the same day as now.
func LabelTimeMessage(labelTime *time.Time, now time.Time) string {
	if labelTime == nil {
		return "No information about this cluster in the database."
	}
	t := labelTime.In(now.Location())
	stamp := t.Format("15:04:05")
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		stamp = t.Format("January 2 2006, ") + stamp
	}
	return fmt.Sprintf("Cluster data saved to database at %s. (%s)", stamp, humanize.RelTime(t, now, "ago", "from now"))
}

// StatusButton is one cluster status toggle.
type StatusButton struct {
	Status   label.ClusterStatus
	Title    string
	Key      string
	Selected bool
	// OnPress is the status sent when the button is pressed. Pressing the
	// active button resets the cluster to the default status.
	OnPress label.ClusterStatus
}

// StatusButtons returns one button per cluster status in display order.
func StatusButtons(current label.ClusterStatus) []StatusButton {
	buttons := make([]StatusButton, 0, len(label.ClusterStatuses))
	for i, status := range label.ClusterStatuses {
		b := StatusButton{
			Status:   status,
			Title:    status.Title(),
			Key:      fmt.Sprintf("f%d", i+1),
			Selected: status == current,
			OnPress:  status,
		}
		if b.Selected {
			b.OnPress = label.DefaultClusterStatus
		}
		buttons = append(buttons, b)
	}
	return buttons
}
