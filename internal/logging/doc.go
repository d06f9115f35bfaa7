// Package logging provides structured logging for the apsetup console and
// the device simulator.
//
// This package wraps a global zap logger. It is silent unless a level is
// given, either explicitly or through APSETUP_LOG_LEVEL, so command output is
// never interleaved with log lines by accident.
//
// # Log Levels
//
//   - Debug: every dispatch (action and phase transition), request timings, bodies
//   - Info: stale responses dropped, simulator requests, save results
//   - Warn: failed device requests
//   - Error: startup failures
//
// # Specialized Logging
//
//	logging.LogDispatch("SCANNING", "FETCHED_CONFIG", "SCANNING")
//	logging.LogRequest("GET", "http://192.168.4.1/browse.json", 200, elapsed, nil)
//	logging.LogStaleResponse("browse", 1, 2)
//
// # Configuration
//
// The console owns the terminal, so it logs to a file:
//
//	if err := logging.InitializeWithOutput("debug", "/tmp/apsetup.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The simulator logs to stdout with logging.Initialize(level).
package logging
