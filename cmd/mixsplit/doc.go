// Package main hosts the mixsplit CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the description scanner, the
// cut-and-archive splitter, environment checks, the run history ledger, and
// configuration scaffolding. It centralizes configuration resolution and
// logger setup so subcommands can focus on presenting results.
//
// Command results go to stdout; logs go to stderr.
package main
