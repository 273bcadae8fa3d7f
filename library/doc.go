// Package library contains concrete Catalog implementations. The catalog
// interface and SearchResult type reside in the core package. Depend on
// core.Catalog in your code and select an implementation (like the in-memory
// catalog below) at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (embeddings indexes, full-text engines) to be added without
// introducing dependency cycles.
package library
