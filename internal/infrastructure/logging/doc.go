// Package logging wraps log/slog for the PDU simulator.
//
// All components log through this package so every entry carries the
// same default fields (service, version) and honours the configured
// level, format and destination:
//
//	logging:
//	  level: "info"    # debug, info, warn, error
//	  format: "json"   # json, text
//	  output: "stdout" # stdout, stderr
//
// Handlers are built once at startup; components derive child loggers
// with With rather than constructing their own:
//
//	log := logging.New(cfg.Logging, version)
//	apiLog := log.With("component", "api")
//	apiLog.Info("listening", "addr", addr)
//
// Credentials, session tokens and password hashes must never be
// logged. Handlers log usernames only.
package logging
