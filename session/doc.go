// Package session houses concrete implementations of the core.SessionArchive.
// The interface itself (and the RecordingSession struct) live in the core
// package to centralize domain contracts. Keeping only implementations here
// prevents higher level packages (studio, cmd) from depending on concrete
// storage.
//
// Two backends are provided: InMemoryArchive for tests and single-run apps,
// and FileStore, which persists each session as a JSON file in the codec wire
// format so stored files double as exports. Additional backends (Redis,
// Postgres, object stores) can be added without changing any calling code;
// only the wiring layer decides which implementation to instantiate.
package session
