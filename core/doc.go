// Package core provides the foundational domain types and contracts used by
// AirCanvas. It defines the core abstractions for:
//
//   - The recorded data model (landmarks, gestures, generations, sessions)
//   - The merged timeline view and the EventHandler consumer contract
//   - Discriminated error kinds shared across packages
//   - The Clock/Timer scheduling abstraction with system and manual clocks
//   - Pluggable stores for session archives, image assets and session search
//
// The package intentionally keeps implementation concerns (capture, playback,
// serialization, concrete storage backends) out of scope, exposing small
// interfaces to enable custom backends and extensions. All exported
// identifiers include concise documentation to aid discoverability and
// external consumption.
package core
