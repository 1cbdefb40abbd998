// Package location formats and parses the position path
// /movies/{movieID}/clusters/{n}, where n is the 1-indexed cluster, and keeps
// the last path on disk so the labeler can resume where it stopped.
package location

import (
	"fmt"
	"regexp"
	"strconv"
)

var pathPattern = regexp.MustCompile(`^/movies/(\d+)/clusters/(\d+)/?$`)

// Format returns the path for a 0-indexed cluster.
func Format(movieID int64, clusterID int) string {
	return fmt.Sprintf("/movies/%d/clusters/%d", movieID, clusterID+1)
}

// Parse returns the movie and 0-indexed cluster of path. A path that does not
// match yields (0, 0). A cluster segment of 0 yields -1; callers fold it into
// range with nav.Normalize.
func Parse(path string) (int64, int) {
	match := pathPattern.FindStringSubmatch(path)
	if match == nil {
		return 0, 0
	}
	movieID, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, 0
	}
	cluster, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, 0
	}
	return movieID, cluster - 1
}
