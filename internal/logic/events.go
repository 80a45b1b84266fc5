package logic

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrEventCycle = errors.New("event reference cycle")

// Event is a named checkpoint that holds no item. Spots and other events
// refer to it by name.
type Event struct {
	Name        Flag                 `json:"name"`
	Requirement AnyOfAllRequirements `json:"requirement,omitempty"`
}

// MergeEvents replaces every group that names an event with the product of
// the event's branches and the rest of the group. Events must already be
// free of event references for the result to be too.
func MergeEvents(expr AnyOfAllRequirements, events []Event) AnyOfAllRequirements {
	if expr == nil {
		return nil
	}
	out := expr
	for _, ev := range events {
		if !out.Mentions(ev.Name) {
			continue
		}
		if ev.Requirement == nil {
			// The event is free, so any group naming it only needs its other flags.
			next, always := dropFlag(out, ev.Name)
			if always {
				return nil
			}
			out = next
			continue
		}
		next := make(AnyOfAllRequirements, 0, len(out))
		for _, group := range out {
			if !group.contains(ev.Name) {
				next = append(next, group)
				continue
			}
			for _, branch := range ev.Requirement {
				merged := append(AllRequirements(nil), branch...)
				for _, f := range group {
					if f == ev.Name || merged.contains(f) {
						continue
					}
					merged = append(merged, f)
				}
				next = append(next, merged)
			}
		}
		out = next
	}
	return out
}

func dropFlag(expr AnyOfAllRequirements, name Flag) (AnyOfAllRequirements, bool) {
	out := make(AnyOfAllRequirements, 0, len(expr))
	for _, group := range expr {
		if !group.contains(name) {
			out = append(out, group)
			continue
		}
		kept := make(AllRequirements, 0, len(group))
		for _, f := range group {
			if f != name {
				kept = append(kept, f)
			}
		}
		if len(kept) == 0 {
			return nil, true
		}
		out = append(out, kept)
	}
	return out, false
}

// InlineEvents resolves event-to-event references. Events are inlined once
// each in dependency order; the result keeps the input order and no event
// requirement names another event. A reference cycle fails with
// ErrEventCycle.
func InlineEvents(events []Event) ([]Event, error) {
	index := make(map[Flag]int, len(events))
	for i, ev := range events {
		if _, dup := index[ev.Name]; dup {
			return nil, fmt.Errorf("duplicate event %q", ev.Name)
		}
		index[ev.Name] = i
	}

	// dependents[j] lists events whose requirement names event j.
	dependents := make([][]int, len(events))
	indegree := make([]int, len(events))
	for i, ev := range events {
		for _, f := range ev.Requirement.Flags() {
			j, ok := index[f]
			if !ok {
				continue
			}
			if j == i {
				return nil, fmt.Errorf("%w: %s", ErrEventCycle, ev.Name)
			}
			dependents[j] = append(dependents[j], i)
			indegree[i]++
		}
	}

	ready := make([]int, 0, len(events))
	for i := range events {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}
	resolved := make([]Event, len(events))
	done := make([]bool, len(events))
	inlined := make([]Event, 0, len(events))
	for len(ready) > 0 {
		sort.Ints(ready)
		i := ready[0]
		ready = ready[1:]

		ev := events[i]
		resolved[i] = Event{Name: ev.Name, Requirement: MergeEvents(ev.Requirement.Clone(), inlined)}
		inlined = append(inlined, resolved[i])
		done[i] = true
		for _, d := range dependents[i] {
			indegree[d]--
			if indegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(inlined) < len(events) {
		var stuck []string
		for i, ev := range events {
			if !done[i] {
				stuck = append(stuck, string(ev.Name))
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrEventCycle, strings.Join(stuck, ", "))
	}
	return resolved, nil
}
