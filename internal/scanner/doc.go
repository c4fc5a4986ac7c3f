// Package scanner reports description files that carry no timestamps.
//
// A file passes when its text contains at least one two-digit "NN:NN"
// fragment. Everything else, including empty files and files whose track
// listing only uses single-digit components, is reported as missing.
package scanner
