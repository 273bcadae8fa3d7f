package core

// AssetStore defines the interface for generated-image persistence.
// Implementations should be thread-safe and scope assets by session
// identifier. Short method names (Save/Get/List/Delete) mirror the other
// store interfaces for consistency.
type AssetStore interface {
	Save(sessionID, assetID string, data []byte) error
	Get(sessionID, assetID string) ([]byte, error)
	List(sessionID string) ([]string, error)
	Delete(sessionID, assetID string) error
}
