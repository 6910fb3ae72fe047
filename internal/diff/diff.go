// Package diff computes the minimal set of changes between two card
// snapshots. It is pure: the result only drives which history records the
// caller emits.
package diff

import (
	"sort"
	"time"
)

// Snapshot captures the history-relevant scalar fields and assignee set of
// a card at one point in time.
type Snapshot struct {
	Title       string
	Description string
	DueDate     *time.Time
	AssigneeIDs []uint
}

// Changes is the minimal change set between two snapshots. Added and
// Removed are sorted ascending for deterministic history ordering.
type Changes struct {
	TitleChanged       bool
	DescriptionChanged bool
	DeadlineChanged    bool
	OldTitle           string
	NewTitle           string
	Added              []uint
	Removed            []uint
}

// FieldsChanged reports whether any scalar field changed.
func (c Changes) FieldsChanged() bool {
	return c.TitleChanged || c.DescriptionChanged || c.DeadlineChanged
}

// AssigneesChanged reports whether the assignee set changed.
func (c Changes) AssigneesChanged() bool {
	return len(c.Added) > 0 || len(c.Removed) > 0
}

// Detect compares an old and a candidate-new snapshot.
func Detect(before, after Snapshot) Changes {
	ch := Changes{}

	if before.Title != after.Title {
		ch.TitleChanged = true
		ch.OldTitle = before.Title
		ch.NewTitle = after.Title
	}
	if before.Description != after.Description {
		ch.DescriptionChanged = true
	}
	if !equalTimePtr(before.DueDate, after.DueDate) {
		ch.DeadlineChanged = true
	}

	oldSet := toSet(before.AssigneeIDs)
	newSet := toSet(after.AssigneeIDs)
	for id := range newSet {
		if !oldSet[id] {
			ch.Added = append(ch.Added, id)
		}
	}
	for id := range oldSet {
		if !newSet[id] {
			ch.Removed = append(ch.Removed, id)
		}
	}
	sort.Slice(ch.Added, func(i, j int) bool { return ch.Added[i] < ch.Added[j] })
	sort.Slice(ch.Removed, func(i, j int) bool { return ch.Removed[i] < ch.Removed[j] })

	return ch
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
