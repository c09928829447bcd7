// Package session coordinates the lifecycle of one dinner.
//
// New allocates the shared state (fork ring, philosophers, action log and
// termination signal) and registers a release function for every resource it
// acquires. Run seats one goroutine per philosopher, runs the monitor on the
// calling goroutine, joins every philosopher once the dinner ends and only
// then unwinds the cleanup stack, so no philosopher can ever touch released
// state.
package session
