// Package commands defines the userstore CLI.
//
// Commands
//
//   - serve    Run the HTTP service over the users file
//   - init     Create an empty users file if none exists
//   - list     Print the stored document
//   - add      Create a user
//   - update   Merge fields into a user
//   - delete   Remove a user
//
// # Implementation
//
// The root command loads the environment configuration before any
// subcommand runs and applies explicitly set flags over it. The record
// commands act on the local users file, or on a running service when
// --server is given.
package commands
