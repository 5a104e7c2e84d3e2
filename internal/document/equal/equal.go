// Package equal implements the deep structural comparison used for dirty
// checking. Slices compare element by element in order, maps by key set and
// value, and a nil slice or map never equals an empty one.
package equal

import "github.com/google/go-cmp/cmp"

// Equal reports whether a and b are structurally equal. Values of different
// dynamic types are unequal. Equal never panics: anything go-cmp refuses to
// compare (for instance structs with unexported fields) is reported unequal.
func Equal(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return cmp.Equal(a, b)
}
