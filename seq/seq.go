// Package seq provides small positional helpers for slices that are kept
// in index-aligned pairs, such as the handler and callback-name sequences
// inside a dispatcher registry.
//
// All helpers that change length return a fresh slice and leave the input
// untouched, so two aligned sequences can be rebuilt in lockstep without
// one edit invalidating indexes into the other.
package seq

// NotFound is returned by Find when no element matches.
const NotFound = -1

// Find returns the index of the first element at or after offset that
// equals v, or NotFound. A negative offset is treated as zero. Equality is
// Go's ==, so for pointer and interface element types a nil target matches
// only nil elements.
func Find[T comparable](s []T, v T, offset int) int {
	if offset < 0 {
		offset = 0
	}
	for i := offset; i < len(s); i++ {
		if s[i] == v {
			return i
		}
	}
	return NotFound
}

// Append returns a new slice holding the elements of s followed by v.
func Append[T any](s []T, v T) []T {
	out := make([]T, len(s)+1)
	copy(out, s)
	out[len(s)] = v
	return out
}

// RemoveAt returns a new slice holding the elements of s with the element
// at index i removed. It panics if i is out of range.
func RemoveAt[T any](s []T, i int) []T {
	if i < 0 || i >= len(s) {
		panic("seq: RemoveAt index out of range")
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}
