// Package codegen emits typed Go match structs for compiled patterns.
package codegen

import "fmt"

// FieldName returns the struct field name for group k: the capture name
// with its first letter upper-cased, or GroupN for unnamed groups.
func FieldName(name string, k int) string {
	if name == "" {
		return fmt.Sprintf("Group%d", k)
	}
	return UpperFirst(name)
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
