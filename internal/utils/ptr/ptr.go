// Package ptr holds small helpers for optional values modelled as pointers.
package ptr

// To creates a pointer to the given value.
// This is a generic utility function that works with any type.
func To[T any](v T) *T {
	return &v
}

// String creates a pointer to the given string value.
func String(s string) *string {
	return &s
}

// StringOrNil returns nil for the empty string and a pointer otherwise.
// CSV cells of optional columns are loaded through it.
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to value, or the zero value for nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NonEmpty reports whether p is set and holds a non-empty string.
func NonEmpty(p *string) bool {
	return p != nil && *p != ""
}
