// Package http implements the HTTP handlers of the arrears report server.
//
// Handlers stay thin: they call the service layer and turn its results into
// JSON (go-chi/render), HTML (html/template) or RFC 7807 problems through
// errors.ErrorHandler.
//
// Routes:
//
//	GET    /                   dashboard table, or an error page with status 500
//	GET    /api/report         report as JSON
//	GET    /api/report/cache   dataset cache counters
//	DELETE /api/report/cache   drop cached datasets
//	GET    /api/health         liveness
//	GET    /api/health/ready   readiness, 503 while the loan source is missing
//	GET    /api/version        build and runtime information
//
// The dashboard renders into a buffer before writing so a failure never
// leaves a partial table on the wire.
package http
