// Package app wires the arrears report web server together: telemetry,
// the report and health services, the chi router with its middleware chain,
// and the HTTP server lifecycle.
//
//	cfg, err := config.Load()
//	...
//	logger, err := infrastructure.InitializeLogger(cfg.Logging)
//	...
//	application, err := app.NewApplication(cfg, logger)
//	...
//	return application.Run()
//
// Run blocks until SIGINT or SIGTERM and then shuts the server down within
// Server.ShutdownTimeout. Errors are returned to main; the package never
// calls os.Exit.
package app
