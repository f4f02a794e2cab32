package playlist

import (
	"strings"
	"time"
)

// Track represents a single music track with essential metadata
type Track struct {
	Name      string   `csv:"name"`
	Artists   []string `csv:"artists"`
	Album     string   `csv:"album"`
	ID        string   `csv:"id"`
	ArtistIDs []string `csv:"artist_ids"`
	AlbumID   string   `csv:"album_id"`
	URL       string   `csv:"url"`
}

// Query returns the search term used to find the track, "<artists> - <title>".
func (t Track) Query() string {
	return strings.Join(t.Artists, ", ") + " - " + t.Name
}

// Playlist represents a collection of tracks.
// A nil entry in Tracks is an item the catalog no longer serves.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Tracks      []*Track
	CreatedAt   time.Time
}

// Available returns the non-nil tracks in playlist order.
func (p Playlist) Available() []Track {
	tracks := make([]Track, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks
}
