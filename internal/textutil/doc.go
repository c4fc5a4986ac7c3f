// Package textutil provides text helpers shared by the scanner and splitter:
// decoding description files that are not valid UTF-8 and making track
// labels safe to use in file names.
package textutil
