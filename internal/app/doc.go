// Package app wires application dependencies for the CLI.
//
// It loads Config from the environment, builds the file-backed store and the
// HTTP handler from it, and runs the HTTP server until its context ends.
package app
