package actions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"tunepull/internal/adapters"
	"tunepull/internal/config"
	"tunepull/internal/downloader"
	"tunepull/internal/porter"
	"tunepull/internal/ui"
)

func newConsole(c *cli.Context) *ui.Console {
	return ui.NewConsole(c.App.Writer)
}

func configPath(c *cli.Context) (string, error) {
	if path := c.String("config"); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// loadSettings reads the settings snapshot used for the rest of the command.
func loadSettings(c *cli.Context, console *ui.Console) (config.Settings, string, error) {
	if err := config.LoadDotEnv(); err != nil {
		console.Warning(err.Error())
	}

	path, err := configPath(c)
	if err != nil {
		return config.Settings{}, "", err
	}

	s, created, err := config.Load(path)
	if err != nil {
		return config.Settings{}, "", err
	}
	if created {
		console.Info(fmt.Sprintf("Created new config file: %s", path))
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, "", fmt.Errorf("config %s: %w", path, err)
	}
	return s, path, nil
}

func saveSettings(path string, s config.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return config.Save(path, s)
}

// newPorter wires the catalog, resolver and fetcher for s.
// Missing Spotify credentials leave the catalog unset so only playlist commands fail.
func newPorter(ctx context.Context, s config.Settings, console *ui.Console) *porter.Porter {
	var catalog porter.Catalog
	if a, err := adapters.NewSpotifyAdapter(s.Spotify.ClientID, s.Spotify.ClientSecret); err == nil {
		catalog = a
	}

	opts := []downloader.Option{downloader.WithLogger(log.New(os.Stderr, "tunepull: ", 0))}
	if s.YouTube.APIKey != "" {
		r, err := adapters.NewYouTubeResolver(ctx, s.YouTube.APIKey)
		if err != nil {
			console.Warning(fmt.Sprintf("YouTube search disabled: %v", err))
		} else {
			opts = append(opts, downloader.WithResolver(r))
		}
	}

	return porter.NewPorter(catalog, spinnerFetcher{next: downloader.New(opts...)}, console)
}

// withSpinner runs action behind a spinner when stdout is a terminal.
func withSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return action(ctx)
	}
	return spinner.New().Title(title).Context(ctx).ActionWithErr(action).Run()
}

// spinnerFetcher shows a spinner while the wrapped fetcher runs.
type spinnerFetcher struct {
	next porter.Fetcher
}

func (f spinnerFetcher) Fetch(ctx context.Context, query, destDir string, mode downloader.Mode, s config.Download) error {
	return withSpinner(ctx, "Downloading...", func(ctx context.Context) error {
		return f.next.Fetch(ctx, query, destDir, mode, s)
	})
}

// Describe turns an error into the single line shown to the user.
func Describe(err error) string {
	switch {
	case errors.Is(err, adapters.ErrUnconfigured):
		return "Spotify API credentials not set. Run `tunepull configure spotify` first."
	case errors.Is(err, adapters.ErrInvalidReference):
		return "Invalid Spotify playlist URL"
	case errors.Is(err, adapters.ErrAuth):
		return fmt.Sprintf("Spotify rejected the credentials: %v", err)
	case errors.Is(err, adapters.ErrNotFound):
		return fmt.Sprintf("Playlist not found: %v", err)
	case errors.Is(err, context.Canceled):
		return "Interrupted"
	}
	var dlErr *downloader.DownloadError
	if errors.As(err, &dlErr) {
		return fmt.Sprintf("Download failed: %v", dlErr)
	}
	return err.Error()
}
