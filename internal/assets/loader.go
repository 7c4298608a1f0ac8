package assets

// DefaultStyleName is the stylesheet used when no style is configured.
const DefaultStyleName = "report"

// AssetLoader defines the contract for loading CSS styles.
// Implementations may load from embedded assets or the filesystem.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
