// Package codec converts sessions to and from their JSON wire format.
//
// Exports are deterministic: encoding the same session twice yields identical
// bytes, so exports diff and hash cleanly. Imports validate only the session
// shape, an id plus gesture and generation arrays, and otherwise pass content
// through untouched, including landmark sets of unusual sizes.
package codec
