// Package pkg is a package that provides utilities for potlint.
package pkg

// Multiset is a counting map: each element carries an occurrence count.
// It backs the declared/discovered cancellation of the manifest check,
// where duplicate occurrences must cancel one-for-one rather than
// collapsing into a set.
type Multiset[T comparable] map[T]int

// NewMultiset builds a multiset from the given items.
func NewMultiset[T comparable](items ...T) Multiset[T] {
	s := make(Multiset[T], len(items))
	for _, item := range items {
		s.Add(item)
	}

	return s
}

// Add records one more occurrence of item.
func (s Multiset[T]) Add(item T) {
	s[item]++
}

// Remove cancels one occurrence of item, reporting whether one was present.
func (s Multiset[T]) Remove(item T) bool {
	count, ok := s[item]
	if !ok {
		return false
	}

	if count <= 1 {
		delete(s, item)
		return true
	}

	s[item] = count - 1

	return true
}

// Count returns the occurrence count of item.
func (s Multiset[T]) Count(item T) int {
	return s[item]
}

// Len returns the total number of occurrences across all elements.
func (s Multiset[T]) Len() int {
	total := 0
	for _, count := range s {
		total += count
	}

	return total
}

// Cancel removes occurrences common to s and other from both sides,
// one-for-one. After it returns, no element has a positive count in both.
func (s Multiset[T]) Cancel(other Multiset[T]) {
	for item, count := range s {
		common := min(count, other[item])
		if common == 0 {
			continue
		}

		for i := 0; i < common; i++ {
			s.Remove(item)
			other.Remove(item)
		}
	}
}

// Items expands the multiset back into a slice, repeating each element
// once per occurrence. Order is unspecified; callers sort as needed.
func (s Multiset[T]) Items() []T {
	out := make([]T, 0, s.Len())

	for item, count := range s {
		for i := 0; i < count; i++ {
			out = append(out, item)
		}
	}

	return out
}
