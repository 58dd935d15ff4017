// Package config loads and saves Dropclock user preferences.
//
// Preferences live in a YAML file, by default ~/.dropclock/preferences.yaml.
// A missing file yields defaults. Policy and Modes convert the stored flags
// into the values the countdown and quantize packages consume.
package config
