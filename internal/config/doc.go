// Package config provides configuration management for the arrears report.
//
// # Configuration Sources
//
// Configuration is assembled in order of increasing precedence:
//
//  1. Compiled-in defaults (Default)
//  2. An optional YAML file (ARREARS_CONFIG, config.yaml or configs/config.yaml)
//  3. Environment variables, optionally seeded from a .env file
//
// With no file and no environment the report is exactly the January collection
// challenge: source sample.xlsx, window 2026-01-01..2026-01-21, Advans Branch
// excluded, 3% commission and the seven-branch collected baseline.
//
// # Environment Variables
//
// Variables follow the pattern ARREARS_<SECTION>_<FIELD>:
//
//	ARREARS_SERVER_PORT=8080
//	ARREARS_LOGGING_LEVEL=debug
//	ARREARS_REPORT_SOURCE_FILE=/data/loans.xlsx
//	ARREARS_REPORT_BASELINE_FILE=/data/collected.yaml
//
// # Baseline File
//
// The collected baseline can be replaced for another reporting period with a
// YAML map:
//
//	Kitengala Branch: 128600
//	Kawangware Branch: 1148531
package config
