package adapters

// PlatformType represents the supported platforms
type PlatformType string

const (
	SpotifyPlatform PlatformType = "spotify"
	YoutubePlatform PlatformType = "youtube"
)
