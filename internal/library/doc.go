// Package library scans the library directory into a sorted list of
// titles.
package library
