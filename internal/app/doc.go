// Package app wires a dinner together: it merges the configuration file with
// the command-line values, builds the session with its optional live feed,
// serves the health and status endpoints, and runs the dinner to completion.
// It is decoupled from any specific entrypoint.
package app
