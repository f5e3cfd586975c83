// Package conv narrows integers with overflow checks.
//
// Use it where a length or count crosses into a fixed-width field (frame
// headers, command-line sizes); plain casts remain fine for values bounded
// by construction.
package conv
