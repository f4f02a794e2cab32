package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"tunepull/internal/playlist"
)

// spotifyPageLimit is the largest page the playlist items endpoint serves.
const spotifyPageLimit = 100

// SpotifyAdapter reads playlists from the Spotify Web API using app credentials.
type SpotifyAdapter struct {
	BaseAdapter  // Embed the BaseAdapter
	client       *spotify.Client
	clientID     string
	clientSecret string
	tokenURL     string
	baseURL      string
	httpClient   *http.Client
}

// SpotifyOption configures a SpotifyAdapter.
type SpotifyOption func(*SpotifyAdapter)

// WithSpotifyBaseURL points the adapter at another Web API root.
func WithSpotifyBaseURL(url string) SpotifyOption {
	return func(a *SpotifyAdapter) {
		a.baseURL = url
	}
}

// WithTokenURL overrides the OAuth2 token endpoint.
func WithTokenURL(url string) SpotifyOption {
	return func(a *SpotifyAdapter) {
		a.tokenURL = url
	}
}

// WithHTTPClient sets the transport used for token and API requests.
func WithHTTPClient(c *http.Client) SpotifyOption {
	return func(a *SpotifyAdapter) {
		a.httpClient = c
	}
}

// NewSpotifyAdapter creates a new SpotifyAdapter.
// Empty credentials fall back to SPOTIFY_ID and SPOTIFY_SECRET; if still empty,
// ErrUnconfigured is returned and nothing is contacted.
func NewSpotifyAdapter(clientID, clientSecret string, opts ...SpotifyOption) (*SpotifyAdapter, error) {
	if clientID == "" {
		clientID = os.Getenv("SPOTIFY_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("SPOTIFY_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client ID and secret must be provided", ErrUnconfigured)
	}

	a := &SpotifyAdapter{
		BaseAdapter:  NewBaseAdapter(SpotifyPlatform),
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     spotifyauth.TokenURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Authenticate obtains an app token with the client credentials flow.
func (a *SpotifyAdapter) Authenticate(ctx context.Context) error {
	if a.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	}

	cfg := &clientcredentials.Config{
		ClientID:     a.clientID,
		ClientSecret: a.clientSecret,
		TokenURL:     a.tokenURL,
	}
	ts := cfg.TokenSource(ctx)
	if _, err := ts.Token(); err != nil {
		return classifySpotifyError(err)
	}

	var clientOpts []spotify.ClientOption
	if a.baseURL != "" {
		clientOpts = append(clientOpts, spotify.WithBaseURL(a.baseURL))
	} else {
		clientOpts = append(clientOpts, spotify.WithRetry(true))
	}

	a.client = spotify.New(oauth2.NewClient(ctx, ts), clientOpts...)
	a.SetAuthenticated(true)
	return nil
}

// GetPlaylist resolves reference and pages through every playlist item in order.
// Removed or non-track items are kept as nil entries.
func (a *SpotifyAdapter) GetPlaylist(ctx context.Context, reference string) (playlist.Playlist, error) {
	id, err := ExtractPlaylistID(reference)
	if err != nil {
		return playlist.Playlist{}, err
	}

	if !a.IsAuthenticated() {
		if err := a.Authenticate(ctx); err != nil {
			return playlist.Playlist{}, err
		}
	}

	full, err := a.client.GetPlaylist(ctx, spotify.ID(id), spotify.Fields("id,name,description"))
	if err != nil {
		return playlist.Playlist{}, fmt.Errorf("get playlist %s: %w", id, classifySpotifyError(err))
	}

	tracks := make([]*playlist.Track, 0)
	offset := 0
	for {
		page, err := a.client.GetPlaylistItems(
			ctx,
			spotify.ID(id),
			spotify.Limit(spotifyPageLimit),
			spotify.Offset(offset),
		)
		if err != nil {
			return playlist.Playlist{}, fmt.Errorf("get playlist %s items at offset %d: %w", id, offset, classifySpotifyError(err))
		}

		tracks = append(tracks, convertPlaylistItems(page.Items)...)

		// an empty page with a cursor would never advance
		if page.Next == "" || len(page.Items) == 0 {
			break
		}
		offset += len(page.Items)
	}

	return playlist.Playlist{
		ID:          id,
		Name:        full.Name,
		Description: full.Description,
		TrackCount:  len(tracks),
		Tracks:      tracks,
	}, nil
}

func convertPlaylistItems(items []spotify.PlaylistItem) []*playlist.Track {
	tracks := make([]*playlist.Track, 0, len(items))
	for _, item := range items {
		tracks = append(tracks, convertTrack(item.Track.Track))
	}
	return tracks
}

func convertTrack(track *spotify.FullTrack) *playlist.Track {
	if track == nil {
		return nil
	}

	var artistNames []string
	var artistIDs []string
	for _, artist := range track.Artists {
		artistNames = append(artistNames, artist.Name)
		artistIDs = append(artistIDs, string(artist.ID))
	}

	t := &playlist.Track{
		Name:      track.Name,
		Artists:   artistNames,
		Album:     track.Album.Name,
		ID:        string(track.ID),
		ArtistIDs: artistIDs,
		AlbumID:   string(track.Album.ID),
	}
	if track.ID != "" {
		t.URL = fmt.Sprintf("https://open.spotify.com/track/%s", track.ID)
	}
	return t
}

// classifySpotifyError maps API and token errors onto the catalog error set.
func classifySpotifyError(err error) error {
	status := 0
	var apiErr spotify.Error
	var apiErrPtr *spotify.Error
	var tokenErr *oauth2.RetrieveError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
	case errors.As(err, &apiErrPtr):
		status = apiErrPtr.Status
	case errors.As(err, &tokenErr):
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrAuth, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
}
