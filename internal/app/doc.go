// Package app wires the job market dashboard together: configuration,
// logging, OpenTelemetry, the jobs and health services and the chi router.
//
// Middleware runs in this order:
//
//	RequestID → RealIP → OTel → StructuredLogger → Recoverer →
//	SecureHeaders → CORS → RateLimiter → Timeout (/api only)
//
// Usage:
//
//	app, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run refuses to serve when the postings source cannot be loaded.
package app
