// Package config loads the optional lcdcalc TOML configuration file.
//
// A missing file is not an error: Load returns Default. Environment
// variables with the LCDCALC_ prefix override file values, and Validate
// rejects out-of-range settings with a *ConfigError naming the field.
//
//	angle_mode       = "RAD"
//	history_capacity = 100
//	status_ms        = 1800
//	journal          = "~/.lcdcalc/journal.db"
//	log_level        = "debug"
//	layout           = "keys.cue"
package config
