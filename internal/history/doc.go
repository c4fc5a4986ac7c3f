// Package history keeps an optional sqlite ledger of split runs.
//
// The ledger is informational only. Whether a track needs cutting is always
// decided by the presence of its output file, never by this database.
package history
