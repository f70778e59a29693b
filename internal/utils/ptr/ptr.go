// Package ptr returns pointers to literals, for SDK structs whose optional
// fields are pointers.
package ptr

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Int returns a pointer to i.
func Int(i int) *int {
	return &i
}

// Int64 returns a pointer to i.
func Int64(i int64) *int64 {
	return &i
}
