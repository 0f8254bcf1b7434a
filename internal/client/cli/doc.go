// Package cli implements the interactive terminal client for the event
// manager. It wires the online REST client and the offline local store
// behind the application services and exposes them through a small REPL.
//
// The client starts in whatever mode the first command establishes: a
// successful server call switches to online mode, an unreachable server
// drops to offline mode where all data comes from the local preference
// store.
package cli
