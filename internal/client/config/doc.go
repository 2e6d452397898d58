// Package config loads runtime configuration for the wcpredict client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file chosen with --config, or with the
//     WCPREDICT_CONFIG environment variable when the flag is absent. Files
//     ending in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, but only those the user actually set.
//
// # File schema
//
// Durations are strings such as "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:5000",
//	  "request_timeout": "10s",
//	  "session_db": "/home/alice/.cache/wcpredict/session.db",
//	  "session_name": "default",
//	  "ephemeral": false,
//	  "locale": "en-GB",
//	  "timezone": "Europe/London",
//	  "session_check_interval": "30s",
//	  "log_level": "info"
//	}
//
// Keys missing from the file keep their default.
package config
