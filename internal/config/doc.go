// Package config loads and saves the focusnav TOML configuration: search
// timeout, stack grace period, announcement text, cue remapping and host
// settings.
package config
