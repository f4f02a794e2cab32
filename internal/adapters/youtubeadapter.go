package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"tunepull/internal/downloader"
)

var _ downloader.Resolver = (*YouTubeResolver)(nil)

// YouTubeResolver finds the best matching video for a free-text query
// through the YouTube Data API.
type YouTubeResolver struct {
	BaseAdapter
	service *youtube.Service
}

// NewYouTubeResolver creates a resolver authenticated with an API key.
func NewYouTubeResolver(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeResolver, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: youtube API key must be provided", ErrUnconfigured)
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating YouTube client: %w", err)
	}

	r := &YouTubeResolver{
		BaseAdapter: NewBaseAdapter(YoutubePlatform),
		service:     service,
	}
	r.SetAuthenticated(true)
	return r, nil
}

// Resolve returns the watch URL of the top video result for query.
func (r *YouTubeResolver) Resolve(ctx context.Context, query string, mode downloader.Mode) (string, error) {
	if err := r.CheckAuth(); err != nil {
		return "", err
	}

	response, err := r.service.Search.List([]string{"id"}).
		Q(downloader.SearchTerm(query, mode)).
		Type("video").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("error searching for videos: %w", classifyGoogleError(err))
	}

	for _, item := range response.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			return fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id.VideoId), nil
		}
	}
	return "", fmt.Errorf("%w: no video for %q", ErrNotFound, query)
}

func classifyGoogleError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrAuth, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
