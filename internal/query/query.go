// Package query evaluates listing filters over decoded records. Every matcher
// treats an empty filter value as "no constraint".
package query

import "strings"

// Predicate reports whether a record satisfies one filter.
type Predicate[T any] func(T) bool

// All is the conjunction of preds. With no predicates it matches everything.
func All[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Filter returns the items satisfying every predicate, in their original order.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	match := All(preds...)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Contains is a case-sensitive substring match.
func Contains(value, filter string) bool {
	return filter == "" || strings.Contains(value, filter)
}

// ContainsFold is a case-insensitive substring match.
func ContainsFold(value, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}

// Equal is an exact match.
func Equal(value, filter string) bool {
	return filter == "" || value == filter
}
