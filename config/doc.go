// Package config loads and validates AirCanvas configuration from TOML.
//
// Configuration sections by subsystem:
//   - Studio: capture loop settings (base prompt, trigger, budgets)
//   - Generator: image generation backend selection and tuning
//   - Refiner: prompt refinement backend selection
//   - Storage: session persistence directory
//   - Playback: replay defaults
//   - Logging: log format and level
//
// Load starts from Default(), overlays the file when one exists, expands
// paths and validates the result, so callers always receive a usable config.
package config
