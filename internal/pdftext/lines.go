package pdftext

import (
	"math"
	"sort"
	"strings"
)

// Lines reconstructs the fragments of each page into ordered text lines.
//
// The ordering is a contract consumed by every statement parser: pages are
// processed in document order, fragments sharing a rounded Y coordinate form
// one line, lines are emitted top-to-bottom (Y descending, since the origin
// is bottom-left) and fragments within a line left-to-right (X ascending),
// joined with single spaces. Blank lines are dropped. Rounding the Y
// coordinate to the nearest integer absorbs sub-pixel extraction noise.
//
// An empty document yields an empty slice.
func Lines(pages []Page) []string {
	var lines []string

	for _, page := range pages {
		rows := make(map[int][]Fragment)

		for _, f := range page.Fragments {
			key := int(math.Round(f.Y))
			rows[key] = append(rows[key], f)
		}

		keys := make([]int, 0, len(rows))
		for y := range rows {
			keys = append(keys, y)
		}

		sort.Sort(sort.Reverse(sort.IntSlice(keys)))

		for _, y := range keys {
			frags := rows[y]
			sort.SliceStable(frags, func(a, b int) bool {
				return frags[a].X < frags[b].X
			})

			parts := make([]string, 0, len(frags))
			for _, f := range frags {
				parts = append(parts, f.Text)
			}

			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	return lines
}
