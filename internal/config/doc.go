// Package config provides typed configuration for jumptrail.
//
// Settings are layered, lowest priority first:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. JUMPTRAIL_* environment variables
//
// A TOML file looks like:
//
//	[history]
//	capacity = 50
//	circular = false
//	evaluator = "proximity"   # proximity, exact, lua or none
//	proximity_lines = 10
//	script = "~/.config/jumptrail/replace.lua"
//
//	[logging]
//	level = "info"
//
// Unknown keys are rejected so typos surface at startup.
package config
