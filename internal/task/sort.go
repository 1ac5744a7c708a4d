package task

import "sort"

// SortByScore orders tasks score descending, then creation time ascending.
// This is the canonical in-quadrant ordering everywhere tasks are listed.
func SortByScore(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Score() != tasks[j].Score() {
			return tasks[i].Score() > tasks[j].Score()
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

// GroupByQuadrant splits tasks into the four quadrants, each sorted by
// SortByScore. Input order does not matter.
func GroupByQuadrant(tasks []*Task) map[Quadrant][]*Task {
	groups := make(map[Quadrant][]*Task, 4)
	for _, t := range tasks {
		q := t.Quadrant()
		groups[q] = append(groups[q], t)
	}
	for _, g := range groups {
		SortByScore(g)
	}
	return groups
}
