package porter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"tunepull/internal/adapters"
	"tunepull/internal/config"
	"tunepull/internal/downloader"
	"tunepull/internal/playlist"
	"tunepull/internal/ui"
	"tunepull/internal/utils"
)

// Catalog resolves a playlist reference into its full track list.
type Catalog interface {
	GetPlaylist(ctx context.Context, reference string) (playlist.Playlist, error)
}

// Fetcher downloads one query into destDir.
type Fetcher interface {
	Fetch(ctx context.Context, query, destDir string, mode downloader.Mode, s config.Download) error
}

// Porter converts catalog playlists into local files
// using a catalog adapter for metadata and a fetcher for the media itself.
type Porter struct {
	catalog  Catalog
	fetcher  Fetcher
	reporter ui.Reporter
}

// NewPorter creates a Porter. catalog may be nil when only single downloads are needed.
func NewPorter(catalog Catalog, fetcher Fetcher, reporter ui.Reporter) *Porter {
	return &Porter{
		catalog:  catalog,
		fetcher:  fetcher,
		reporter: reporter,
	}
}

// ConvertPlaylist downloads every available track of the referenced playlist as audio
// into "<output root>/<playlist name>". Tracks already on disk are skipped and
// a failed track never stops the run. Only resolving the playlist can fail the call,
// apart from context cancellation, which returns the summary so far.
//
// A track counts as on disk when "<sanitized artists - title>.<audio format>" exists,
// using the configured audio format rather than a fixed ".mp3". yt-dlp names its
// output after the remote title, so the two names can differ.
func (p *Porter) ConvertPlaylist(ctx context.Context, reference string, s config.Settings) (Summary, error) {
	if p.catalog == nil {
		return Summary{}, fmt.Errorf("%w: configure Spotify credentials first", adapters.ErrUnconfigured)
	}

	pl, err := p.catalog.GetPlaylist(ctx, reference)
	if err != nil {
		return Summary{}, fmt.Errorf("error converting playlist: %w", err)
	}

	name := utils.SanitizeFilename(pl.Name)
	dest := filepath.Join(s.Output.Path, name)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}

	p.report(fmt.Sprintf("Playlist: %s", name), ui.LevelInfo)
	p.report(fmt.Sprintf("Output directory: %s", dest), ui.LevelInfo)
	p.report(fmt.Sprintf("Found %d tracks in playlist", len(pl.Tracks)), ui.LevelInfo)

	summary := Summary{Playlist: pl.Name, Dir: dest, Total: len(pl.Tracks)}
	ext := audioExtension(s.Download)

	for i, track := range pl.Tracks {
		if track == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			p.report(fmt.Sprintf("Stopped: %s", summary), ui.LevelWarning)
			return summary, err
		}

		prefix := fmt.Sprintf("[%d/%d]", i+1, len(pl.Tracks))
		query := track.Query()
		outcome := p.convertTrack(ctx, prefix, query, filepath.Join(dest, utils.SanitizeFilename(query)+ext), dest, s.Download)
		summary.record(outcome)
	}

	// cancelled while the last track was running
	if err := ctx.Err(); err != nil {
		p.report(fmt.Sprintf("Stopped: %s", summary), ui.LevelWarning)
		return summary, err
	}

	p.report(fmt.Sprintf("Download complete: %s", summary), ui.LevelInfo)
	return summary, nil
}

func (p *Porter) convertTrack(ctx context.Context, prefix, query, expected, dest string, s config.Download) Outcome {
	if fileExists(expected) {
		p.report(fmt.Sprintf("%s Skipping (exists): %s", prefix, query), ui.LevelWarning)
		return Skipped
	}

	p.report(fmt.Sprintf("%s Downloading: %s", prefix, query), ui.LevelInfo)
	if err := p.fetcher.Fetch(ctx, query, dest, downloader.Audio, s); err != nil {
		p.report(fmt.Sprintf("%s Failed: %s: %v", prefix, query, err), ui.LevelError)
		return Failed
	}

	p.report(fmt.Sprintf("%s Downloaded: %s", prefix, query), ui.LevelSuccess)
	return Succeeded
}

// DownloadSingle fetches one URL or search query into the output root.
func (p *Porter) DownloadSingle(ctx context.Context, query string, mode downloader.Mode, s config.Settings) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errors.New("no input provided")
	}
	if err := os.MkdirAll(s.Output.Path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p.report(fmt.Sprintf("Downloading %s: %s", mode, query), ui.LevelInfo)
	if err := p.fetcher.Fetch(ctx, query, s.Output.Path, mode, s.Download); err != nil {
		return err
	}
	p.report("Download completed successfully!", ui.LevelSuccess)
	return nil
}

// ExportPlaylistToCSV writes the available tracks of the referenced playlist to a CSV file
// and returns how many rows were written.
func (p *Porter) ExportPlaylistToCSV(ctx context.Context, reference, filePath string) (int, error) {
	if p.catalog == nil {
		return 0, fmt.Errorf("%w: configure Spotify credentials first", adapters.ErrUnconfigured)
	}

	pl, err := p.catalog.GetPlaylist(ctx, reference)
	if err != nil {
		return 0, fmt.Errorf("failed to get playlist tracks: %w", err)
	}

	// Ensure filepath has .csv extension
	if !strings.HasSuffix(filePath, ".csv") {
		filePath += ".csv"
	}

	tracks := pl.Available()
	headers := utils.StructToCsvHeader(reflect.TypeOf(playlist.Track{}))
	if err := utils.WriteToCsvFile(filePath, headers, tracks); err != nil {
		return 0, fmt.Errorf("error writing CSV file: %w", err)
	}

	p.report(fmt.Sprintf("Exported %d tracks of %q to %s", len(tracks), pl.Name, filePath), ui.LevelSuccess)
	if removed := len(pl.Tracks) - len(tracks); removed > 0 {
		p.report(fmt.Sprintf("Skipped %d unavailable tracks", removed), ui.LevelWarning)
	}
	return len(tracks), nil
}

func (p *Porter) report(msg string, level ui.Level) {
	if p.reporter != nil {
		p.reporter.Report(msg, level)
	}
}

// audioExtension is the extension yt-dlp gives extracted audio.
func audioExtension(s config.Download) string {
	format := strings.TrimPrefix(s.AudioFormat, ".")
	if format == "" {
		format = config.DefaultAudioFormat
	}
	return "." + format
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
