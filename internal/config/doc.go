// Package config loads ordtree settings.
//
// Settings are merged from three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← ORDTREE_DEMO_SIZE=50
//	├─────────────────────────────┤
//	│  2. Config File             │  ← -config ordtree.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller on top of the result.
//
// A config file is TOML:
//
//	[logging]
//	level = "debug"
//
//	[demo]
//	size = 30
//	maxValue = 200
//	unbalanceCount = 3
//	seed = 42
//
//	[script]
//	instructionLimit = 1000000
//	timeout = "5s"
//
//	[watch]
//	debounce = "100ms"
//
// Environment variables use the ORDTREE_ prefix. The first word after the
// prefix names the section and the rest is the camelCased key, so
// ORDTREE_DEMO_MAX_VALUE sets demo.maxValue. ORDTREE_LOG_LEVEL is an alias
// for logging.level.
package config
