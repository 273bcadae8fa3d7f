package core

// SessionArchive stores finalized sessions by id. Implementations must be
// safe for concurrent access and must not let callers mutate stored sessions
// (copy in / copy out or equivalent).
type SessionArchive interface {
	Save(s *RecordingSession) error
	Get(id string) (*RecordingSession, error)
	List() ([]string, error)
	Delete(id string) error
}
