// Package api provides the Redfish-style HTTP management API for the
// simulated rack PDU.
//
// It exposes the service root, session and account services, the power
// equipment tree (outlets, branches, mains, metrics, sensors), event
// subscriptions, and a manager facade with boot log entries.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
