// Package interpolate expands ${jsonpath} tokens embedded in strings,
// maps, and slices against a parameter map, the way a Go-template engine
// expands {{ .path }} tokens but retargeted to JSONPath syntax and
// type-preserving exact-token substitution.
package interpolate
