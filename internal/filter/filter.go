// Package filter decides which fetched records match the operator's current
// selection. Predicates are pure; they never re-fetch from the services.
package filter

import (
	"strings"
	"time"
)

// Predicate reports whether a record matches one filter dimension.
type Predicate[T any] func(T) bool

// All combines predicates with logical AND. No predicates match everything.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && !p(item) {
				return false
			}
		}
		return true
	}
}

// Apply keeps the items that satisfy every predicate, preserving order.
// With no predicates the input slice is returned as is.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	active := preds[:0:0]
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return items
	}
	match := All(active...)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Search matches when any field contains term, ignoring case.
// An empty term returns nil, which Apply treats as no constraint.
func Search[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return func(item T) bool {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), term) {
				return true
			}
		}
		return false
	}
}

// Status matches records whose field equals selected. An empty selection
// (or "all") imposes no constraint.
func Status[T any](selected string, field func(T) string) Predicate[T] {
	if selected == "" || selected == "all" {
		return nil
	}
	return func(item T) bool {
		return field(item) == selected
	}
}

// StatusIn matches records whose field is one of selected. An empty
// selection imposes no constraint.
func StatusIn[T any](selected []string, field func(T) string) Predicate[T] {
	set := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		if s != "" && s != "all" {
			set[s] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return func(item T) bool {
		_, ok := set[field(item)]
		return ok
	}
}

// Range matches when field is within the inclusive bounds. A nil bound
// leaves that side open; two nil bounds impose no constraint.
func Range[T any](min, max *float64, field func(T) float64) Predicate[T] {
	if min == nil && max == nil {
		return nil
	}
	return func(item T) bool {
		v := field(item)
		if min != nil && v < *min {
			return false
		}
		if max != nil && v > *max {
			return false
		}
		return true
	}
}

// DateRange matches when field falls within [start, end] inclusive. The
// constraint only applies when both bounds are supplied.
func DateRange[T any](start, end *time.Time, field func(T) time.Time) Predicate[T] {
	if start == nil || end == nil {
		return nil
	}
	s, e := *start, *end
	return func(item T) bool {
		t := field(item)
		if t.IsZero() {
			return false
		}
		return !t.Before(s) && !t.After(e)
	}
}

// Float returns a pointer to v, for building Range bounds.
func Float(v float64) *float64 {
	return &v
}
