// Package config loads logging configuration from YAML files with
// environment variable overrides, and can watch the file for changes to
// apply log level updates at runtime.
//
// # Loading
//
//	cfg, err := config.LoadWithEnv("lantern.yaml")
//	if err != nil {
//	    panic(err)
//	}
//	log, err := logger.New(cfg.LoggerConfig())
//
// Environment variables use the LANTERN_ prefix (e.g. LANTERN_LEVEL,
// LANTERN_PRETTY) and always take precedence over file values.
//
// # Hot reload
//
//	go config.WatchLevel(ctx, "lantern.yaml", log)
//
// WatchLevel re-reads the file on change (debounced) and applies the new
// level to the logger without restarting the host.
package config
