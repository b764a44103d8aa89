package buffer

import (
	"github.com/rivo/uniseg"
)

// clusterStarts returns the rune columns at which grapheme clusters of line
// begin, followed by the line length.
func clusterStarts(line string) []int {
	starts := []int{0}
	g := uniseg.NewGraphemes(line)
	col := 0
	for g.Next() {
		col += len(g.Runes())
		starts = append(starts, col)
	}
	return starts
}

// prevCluster returns the column of the cluster before col, or 0.
func prevCluster(line string, col int) int {
	prev := 0
	for _, c := range clusterStarts(line) {
		if c >= col {
			break
		}
		prev = c
	}
	return prev
}

// nextCluster returns the column after the cluster at col, capped at the
// line length.
func nextCluster(line string, col int) int {
	starts := clusterStarts(line)
	for _, c := range starts {
		if c > col {
			return c
		}
	}
	return starts[len(starts)-1]
}
