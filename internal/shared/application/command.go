// Package application holds the shared contracts between command/query
// handlers and their callers.
package application

// Command is a marker for state-changing requests.
type Command interface{}

// Query is a marker for read-only requests.
type Query interface{}
