// Package config loads runtime configuration for the MindEase CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: MINDEASE_AI_API_KEY, MINDEASE_JWT_SECRET,
//     MINDEASE_DATABASE_DSN, MINDEASE_ACCESS_TOKEN. Secrets are kept out of
//     JSON files and shell history this way.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-p string   AI provider: gemini or openai
//	-m string   primary model
//	-d string   cloud database DSN (postgres)
//	-l string   local database path (sqlite)
//	-i int      online status check interval (seconds)
//	-log string log format: text, json, zap, zap-dev
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "4s" or
// integer nanoseconds:
//
//	{
//	  "ai_provider": "gemini",
//	  "primary_model": "gemini-1.5-flash",
//	  "secondary_model": "gemini-pro",
//	  "database_dsn": "postgres://mindease@localhost/mindease",
//	  "analysis_timeout": "4s",
//	  "save_watchdog": "8s"
//	}
package config
