// Package logging builds the zap logger used by the dochooks command.
//
// Create a logger from config:
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, os.Stderr)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync(logger)
//
// Configuration follows the command's precedence:
//  1. Defaults (NewDefaultConfig)
//  2. File (.dochooks.yaml, "log" section)
//  3. Environment variables (DOCHOOKS_LOG_LEVEL, DOCHOOKS_LOG_FORMAT)
//  4. Flags (--verbose forces debug)
package logging
