// Package matcha compiles matcha templates — a small, Jinja-inspired
// templating language — into Gleam source modules.
//
// Compile is the package's only entry point: it runs the scanner, parser,
// and generator in sequence and returns either the emitted Gleam source or
// the first error any stage produced.
package matcha
