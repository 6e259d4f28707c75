// Package app wires and runs the dashboard server. It owns application
// initialization and lifecycle: configuration is consumed, every other
// component is constructed here, and shutdown is orchestrated from here.
//
// # Initialization Flow
//
// NewApplication runs the startup sequence:
//
//	1. Initialize structured logging
//	2. Ensure data/log directories exist
//	3. Initialize OpenTelemetry metrics
//	4. Load the cleaned dataset (fatal when missing)
//	5. Build the query and health services
//	6. Assemble the router and middleware chain
//	7. Create the HTTP server
//
// Step 4 is the gate: the server refuses to start without cleaned data,
// and the returned error tells the user to run the cleaner. An empty
// but well-formed dataset starts fine and reports itself as degraded
// through /api/health.
//
// # Routing
//
// The router applies RequestID and RealIP to everything, then a group
// carrying OTel measurement, structured logging, panic recovery,
// security headers, CORS and rate limiting. The JSON API lives under
// /api, the Prometheus endpoint at /metrics sits outside the group,
// and every other path serves the embedded frontend with an index.html
// fallback.
//
// # Lifecycle
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives,
// then drains in-flight requests within the configured shutdown
// timeout and flushes telemetry. Startup errors are returned rather
// than exiting, so main controls the process exit code.
package app
