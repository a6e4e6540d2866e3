// Package bootstrap runs a service through its lifecycle: logger setup,
// ordered component start, hooks, a startup summary, signal handling and
// reverse-order shutdown under a deadline.
package bootstrap
