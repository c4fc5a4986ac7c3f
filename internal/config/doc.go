// Package config loads, normalizes, and validates mixsplit configuration.
//
// It owns the TOML schema, default values, path expansion (including `~`),
// and environment overrides, and produces a ready-to-use Config for the
// scanner and splitter. Every value has a default so the tools work with no
// configuration file at all; relative directories resolve against the working
// directory at load time.
//
// Keep configuration logic centralized here so the rest of the codebase can
// depend on already-sanitized values.
package config
