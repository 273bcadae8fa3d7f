// Package artifact contains concrete implementations of the core.AssetStore.
//
// The canonical AssetStore interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Implementation
// packages like this one provide the storage backends that hold generated
// image bytes, thumbnails, and other binary session artifacts, keyed by
// session and asset id.
//
// Callers should depend on the core interface rather than concrete types so
// they can substitute alternative persistence layers in tests or production.
package artifact
