package adapters

import (
	"fmt"
	"regexp"
	"strings"
)

var playlistRefPattern = regexp.MustCompile(`(?:playlist/|playlist:)([a-zA-Z0-9]+)`)

// ExtractPlaylistID pulls the playlist identifier out of a share URL
// (".../playlist/<id>?si=...") or a URI ("spotify:playlist:<id>").
func ExtractPlaylistID(ref string) (string, error) {
	m := playlistRefPattern.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return m[1], nil
}
