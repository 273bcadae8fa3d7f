// Package generation defines the provider‑agnostic abstractions and concrete
// helpers for turning rendered prompts into images inside AirCanvas.
//
// Core goals:
//   - Keep request/result shapes minimal and transport independent
//   - Normalize provenance (request id, prompt snapshot, seed) across vendors
//   - Facilitate deterministic mocking for tests (MockGenerator)
//
// Providers (e.g. OpenAI) implement the Generator interface from this package
// so higher layers (studio, replay tooling) remain decoupled from vendor SDKs.
package generation
