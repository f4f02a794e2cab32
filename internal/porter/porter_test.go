package porter

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunepull/internal/adapters"
	"tunepull/internal/config"
	"tunepull/internal/downloader"
	"tunepull/internal/playlist"
	"tunepull/internal/ui"
	"tunepull/internal/utils"
)

type fakeCatalog struct {
	playlist playlist.Playlist
	err      error
	calls    int
}

func (f *fakeCatalog) GetPlaylist(_ context.Context, reference string) (playlist.Playlist, error) {
	f.calls++
	if _, err := adapters.ExtractPlaylistID(reference); err != nil {
		return playlist.Playlist{}, err
	}
	return f.playlist, f.err
}

type fetchCall struct {
	query string
	dest  string
	mode  downloader.Mode
}

// fakeFetcher fails for queries in failOn and, when writeFiles is set,
// leaves "<sanitized query>.mp3" behind like a well-behaved yt-dlp.
type fakeFetcher struct {
	failOn     map[string]bool
	writeFiles bool
	calls      []fetchCall
	onFetch    func()
}

func (f *fakeFetcher) Fetch(_ context.Context, query, destDir string, mode downloader.Mode, _ config.Download) error {
	f.calls = append(f.calls, fetchCall{query, destDir, mode})
	if f.onFetch != nil {
		f.onFetch()
	}
	if f.failOn[query] {
		return &downloader.DownloadError{Query: query, Stderr: "ERROR: unavailable", Err: errors.New("exit status 1")}
	}
	if f.writeFiles {
		return os.WriteFile(filepath.Join(destDir, utils.SanitizeFilename(query)+".mp3"), []byte("audio"), 0o644)
	}
	return nil
}

type recordingReporter struct {
	lines  []string
	levels []ui.Level
}

func (r *recordingReporter) Report(msg string, level ui.Level) {
	r.lines = append(r.lines, msg)
	r.levels = append(r.levels, level)
}

func roadTrip() playlist.Playlist {
	return playlist.Playlist{
		ID:   "roadtrip",
		Name: "Road Trip",
		Tracks: []*playlist.Track{
			{Name: "Song One", Artists: []string{"Artist A"}},
			nil,
			{Name: "Song Two", Artists: []string{"Artist B"}},
		},
	}
}

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	return config.Default().WithOutputPath(t.TempDir())
}

const roadTripURL = "https://open.spotify.com/playlist/roadtrip"

func TestConvertPlaylistMixedOutcomes(t *testing.T) {
	s := testSettings(t)
	fetcher := &fakeFetcher{failOn: map[string]bool{"Artist B - Song Two": true}}
	rep := &recordingReporter{}
	p := NewPorter(&fakeCatalog{playlist: roadTrip()}, fetcher, rep)

	summary, err := p.ConvertPlaylist(context.Background(), roadTripURL, s)

	require.NoError(t, err)
	dest := filepath.Join(s.Output.Path, "Road Trip")
	assert.DirExists(t, dest)
	assert.Equal(t, []fetchCall{
		{"Artist A - Song One", dest, downloader.Audio},
		{"Artist B - Song Two", dest, downloader.Audio},
	}, fetcher.calls)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Processed())
	assert.Equal(t, dest, summary.Dir)
	assert.Contains(t, rep.lines, "[3/3] Downloading: Artist B - Song Two")
	assert.Equal(t, "Download complete: 1 successful, 0 skipped, 1 failed", rep.lines[len(rep.lines)-1])
}

func TestConvertPlaylistSecondRunSkipsEverything(t *testing.T) {
	s := testSettings(t)
	catalog := &fakeCatalog{playlist: roadTrip()}
	fetcher := &fakeFetcher{writeFiles: true}
	p := NewPorter(catalog, fetcher, nil)

	first, err := p.ConvertPlaylist(context.Background(), roadTripURL, s)
	require.NoError(t, err)
	assert.Equal(t, Summary{Playlist: "Road Trip", Dir: first.Dir, Total: 3, Succeeded: 2}, first)

	second, err := p.ConvertPlaylist(context.Background(), roadTripURL, s)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Skipped)
	assert.Equal(t, 0, second.Succeeded)
	assert.Equal(t, 0, second.Failed)
	assert.Len(t, fetcher.calls, 2, "second run must not call the fetcher")
}

func TestConvertPlaylistExistingFileSkipsFetch(t *testing.T) {
	s := testSettings(t)
	pl := playlist.Playlist{Name: `AC/DC: Best?`, Tracks: []*playlist.Track{
		{Name: "Back In Black", Artists: []string{"AC/DC"}},
		{Name: "T.N.T.", Artists: []string{"AC/DC"}},
	}}
	dest := filepath.Join(s.Output.Path, "AC_DC_ Best_")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "AC_DC - Back In Black.mp3"), nil, 0o644))
	fetcher := &fakeFetcher{}
	p := NewPorter(&fakeCatalog{playlist: pl}, fetcher, nil)

	summary, err := p.ConvertPlaylist(context.Background(), roadTripURL, s)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Succeeded)
	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, "AC/DC - T.N.T.", fetcher.calls[0].query)
	assert.Equal(t, dest, fetcher.calls[0].dest)
}

func TestConvertPlaylistUsesConfiguredAudioFormat(t *testing.T) {
	s := testSettings(t).WithDownload(config.Download{AudioFormat: "flac"})
	pl := playlist.Playlist{Name: "Lossless", Tracks: []*playlist.Track{{Name: "Song", Artists: []string{"A"}}}}
	dest := filepath.Join(s.Output.Path, "Lossless")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "A - Song.mp3"), nil, 0o644))
	fetcher := &fakeFetcher{}

	summary, err := NewPorter(&fakeCatalog{playlist: pl}, fetcher, nil).ConvertPlaylist(context.Background(), roadTripURL, s)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded, "an mp3 must not satisfy a flac run")
}

func TestConvertPlaylistOnlyNullTracks(t *testing.T) {
	s := testSettings(t)
	fetcher := &fakeFetcher{}
	pl := playlist.Playlist{Name: "Gone", Tracks: []*playlist.Track{nil, nil}}

	summary, err := NewPorter(&fakeCatalog{playlist: pl}, fetcher, nil).ConvertPlaylist(context.Background(), roadTripURL, s)

	require.NoError(t, err)
	assert.Zero(t, summary.Processed())
	assert.Empty(t, fetcher.calls)
}

func TestConvertPlaylistEmpty(t *testing.T) {
	s := testSettings(t)

	summary, err := NewPorter(&fakeCatalog{playlist: playlist.Playlist{Name: "Empty"}}, &fakeFetcher{}, nil).
		ConvertPlaylist(context.Background(), roadTripURL, s)

	require.NoError(t, err)
	assert.Equal(t, Summary{Playlist: "Empty", Dir: filepath.Join(s.Output.Path, "Empty")}, summary)
}

func TestConvertPlaylistCountsAlwaysAddUp(t *testing.T) {
	s := testSettings(t)
	var tracks []*playlist.Track
	failOn := map[string]bool{}
	for i := 0; i < 12; i++ {
		if i%4 == 3 {
			tracks = append(tracks, nil)
			continue
		}
		tr := &playlist.Track{Name: string(rune('a' + i)), Artists: []string{"X"}}
		if i%3 == 0 {
			failOn[tr.Query()] = true
		}
		tracks = append(tracks, tr)
	}
	dest := filepath.Join(s.Output.Path, "Mix")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "X - b.mp3"), nil, 0o644))

	summary, err := NewPorter(&fakeCatalog{playlist: playlist.Playlist{Name: "Mix", Tracks: tracks}}, &fakeFetcher{failOn: failOn}, nil).
		ConvertPlaylist(context.Background(), roadTripURL, s)

	require.NoError(t, err)
	assert.Equal(t, 9, summary.Processed())
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 3, summary.Failed)
	assert.Equal(t, 5, summary.Succeeded)
}

func TestConvertPlaylistAbortsWhenPlaylistUnresolved(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		err  error
		want error
	}{
		{"invalid reference", "Road Trip", nil, adapters.ErrInvalidReference},
		{"not found", roadTripURL, adapters.ErrNotFound, adapters.ErrNotFound},
		{"auth", roadTripURL, adapters.ErrAuth, adapters.ErrAuth},
		{"network", roadTripURL, adapters.ErrNetwork, adapters.ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings(t)
			fetcher := &fakeFetcher{}
			p := NewPorter(&fakeCatalog{playlist: roadTrip(), err: tt.err}, fetcher, nil)

			_, err := p.ConvertPlaylist(context.Background(), tt.ref, s)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, fetcher.calls)
			entries, _ := os.ReadDir(s.Output.Path)
			assert.Empty(t, entries, "no directory may be created")
		})
	}
}

func TestConvertPlaylistWithoutCatalog(t *testing.T) {
	_, err := NewPorter(nil, &fakeFetcher{}, nil).ConvertPlaylist(context.Background(), roadTripURL, testSettings(t))
	assert.ErrorIs(t, err, adapters.ErrUnconfigured)
}

func TestConvertPlaylistStopsOnCancel(t *testing.T) {
	s := testSettings(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fetcher := &fakeFetcher{onFetch: cancel}

	summary, err := NewPorter(&fakeCatalog{playlist: roadTrip()}, fetcher, nil).ConvertPlaylist(ctx, roadTripURL, s)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, fetcher.calls, 1)
	assert.Equal(t, 1, summary.Processed())
}

func TestConvertPlaylistCancelDuringLastTrack(t *testing.T) {
	s := testSettings(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fetcher := &fakeFetcher{}
	fetcher.onFetch = func() {
		if len(fetcher.calls) == 2 {
			cancel()
		}
	}
	reporter := &recordingReporter{}

	summary, err := NewPorter(&fakeCatalog{playlist: roadTrip()}, fetcher, reporter).ConvertPlaylist(ctx, roadTripURL, s)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, fetcher.calls, 2)
	assert.Equal(t, 2, summary.Processed())
	assert.NotContains(t, reporter.lines, "Download complete: "+summary.String())
	assert.Contains(t, reporter.lines[len(reporter.lines)-1], "Stopped:")
}

func TestDownloadSingle(t *testing.T) {
	s := config.Default().WithOutputPath(filepath.Join(t.TempDir(), "new"))
	fetcher := &fakeFetcher{}
	p := NewPorter(nil, fetcher, nil)

	require.NoError(t, p.DownloadSingle(context.Background(), "  https://youtu.be/abc ", downloader.Video, s))

	assert.DirExists(t, s.Output.Path)
	assert.Equal(t, []fetchCall{{"https://youtu.be/abc", s.Output.Path, downloader.Video}}, fetcher.calls)
}

func TestDownloadSingleErrors(t *testing.T) {
	s := testSettings(t)
	fetcher := &fakeFetcher{failOn: map[string]bool{"broken": true}}
	p := NewPorter(nil, fetcher, nil)

	assert.Error(t, p.DownloadSingle(context.Background(), "   ", downloader.Audio, s))
	assert.Empty(t, fetcher.calls)

	err := p.DownloadSingle(context.Background(), "broken", downloader.Audio, s)
	var dlErr *downloader.DownloadError
	assert.ErrorAs(t, err, &dlErr)
}

func TestExportPlaylistToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "road")
	rep := &recordingReporter{}
	p := NewPorter(&fakeCatalog{playlist: roadTrip()}, nil, rep)

	n, err := p.ExportPlaylistToCSV(context.Background(), roadTripURL, path)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	f, err := os.Open(path + ".csv")
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "artists", "album", "id", "artist_ids", "album_id", "url"}, records[0])
	assert.Equal(t, "Song One", records[1][0])
	assert.Equal(t, "Artist B", records[2][1])
	assert.Contains(t, rep.lines, "Skipped 1 unavailable tracks")
}

func TestExportPlaylistToCSVErrors(t *testing.T) {
	_, err := NewPorter(nil, nil, nil).ExportPlaylistToCSV(context.Background(), roadTripURL, "x.csv")
	assert.ErrorIs(t, err, adapters.ErrUnconfigured)

	_, err = NewPorter(&fakeCatalog{}, nil, nil).ExportPlaylistToCSV(context.Background(), "nope", "x.csv")
	assert.ErrorIs(t, err, adapters.ErrInvalidReference)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}
