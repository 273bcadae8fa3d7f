package recorder

import "sync"

// Registry hands out session recorders configured with one shared set of
// options.
//
// Two access patterns are supported:
//   - New returns a fresh recorder that is independent of every other
//     recorder.
//   - Shared lazily creates one recorder on first use and returns that same
//     instance on every subsequent call.
//
// Construct the registry where the application wires its dependencies and
// pass it down explicitly instead of reaching for package state.
type Registry struct {
	optFns []func(o *Options)

	once   sync.Once
	shared *SessionRecorder
}

// NewRegistry creates a registry. The given options apply to every recorder
// it creates, including the shared one.
func NewRegistry(optFns ...func(o *Options)) *Registry {
	return &Registry{optFns: optFns}
}

// New returns a fresh, independent recorder.
func (r *Registry) New() *SessionRecorder {
	return New(r.optFns...)
}

// Shared returns the registry-wide recorder, creating it on first call.
// Every caller observes the same instance and therefore the same recording
// state.
func (r *Registry) Shared() *SessionRecorder {
	r.once.Do(func() {
		r.shared = New(r.optFns...)
	})
	return r.shared
}
