// Package preflight provides readiness checks for the directories and tools
// mixsplit depends on.
//
// The doctor command runs every check and renders the results. The split
// command runs RunAll before taking its lock and refuses to start when a
// required check fails, so a batch never begins against a missing tool.
package preflight
