// Package cli is responsible for parsing command-line arguments, validating
// their syntax, and handling process-level concerns like exit codes. It
// translates flags and positional arguments into app.Config.
package cli
