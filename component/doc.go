// Package component defines the lifecycle contract shared by the long-lived
// parts of the service and a registry that starts, stops and health-checks
// them in order.
//
// # Interfaces
//
//   - Component: Start/Stop/Health
//   - Describable: startup summary line
//   - RouteProvider: HTTP routes for the startup summary
package component
