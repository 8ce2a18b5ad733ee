// Package config loads, normalizes, and validates stitcher configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI pipelines need: the directory layout, concatenation encode settings,
// silence detection thresholds, and subtitle alignment and render style.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
