package service

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Find returns the index of the row closest to query. Rows containing the
// query beat rows that do not; within each group the smallest edit distance
// wins and ties go to the earlier row.
func (e *EditorService) Find(query string) (int, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	items := e.Store.Items()
	if len(items) == 0 || q == "" {
		return 0, false
	}
	best, bestContains, bestDist := -1, false, 0
	for i, item := range items {
		label := strings.ToLower(item)
		contains := strings.Contains(label, q)
		dist := levenshtein.ComputeDistance(q, label)
		switch {
		case best < 0,
			contains && !bestContains,
			contains == bestContains && dist < bestDist:
			best, bestContains, bestDist = i, contains, dist
		}
	}
	return best, true
}
