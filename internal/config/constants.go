package config

// Application constants
const (
	AppName    = "Arrears Collection Report"
	AppVersion = "1.0.0"
	// ServiceName identifies the process in telemetry resources
	ServiceName = "arrears-report"
)
