package extractor

import (
	"sort"
	"strings"
)

// DefaultLineTolerance is the Y band within which fragments are
// considered part of the same visual line. Rendering jitter moves
// fragments by a few units, so exact comparison would split lines.
const DefaultLineTolerance = 5.0

// GroupLines rebuilds visual lines from an unordered bag of fragments.
// Fragments are sorted by Y, swept top to bottom accumulating a line
// while each fragment stays within tolerance of the line's Y, and each
// finished line is sorted left to right.
func GroupLines(items []TextItem, tolerance float64) [][]TextItem {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]TextItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	var lines [][]TextItem
	current := []TextItem{sorted[0]}
	currentY := sorted[0].Y

	for _, item := range sorted[1:] {
		if abs(item.Y-currentY) <= tolerance {
			current = append(current, item)
			continue
		}
		sortByX(current)
		lines = append(lines, current)
		current = []TextItem{item}
		currentY = item.Y
	}

	sortByX(current)
	lines = append(lines, current)

	return lines
}

// LineString joins the fragment texts of a line with single spaces.
func LineString(line []TextItem) string {
	parts := make([]string, len(line))
	for i, item := range line {
		parts[i] = item.Text
	}
	return strings.Join(parts, " ")
}

func sortByX(line []TextItem) {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].X < line[j].X
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
