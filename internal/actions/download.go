package actions

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v2"

	"tunepull/internal/downloader"
)

// DownloadSingle downloads one URL or search query. Without arguments it asks
// for the query and for audio or video.
func DownloadSingle(c *cli.Context) error {
	console := newConsole(c)
	s, _, err := loadSettings(c, console)
	if err != nil {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	mode := downloader.Audio
	if c.Bool("video") {
		mode = downloader.Video
	}

	if strings.TrimSpace(query) == "" {
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Enter YouTube URL or search query").
				Value(&query),
			huh.NewSelect[downloader.Mode]().
				Title("Download as").
				Options(
					huh.NewOption("Music", downloader.Audio),
					huh.NewOption("Video", downloader.Video),
				).
				Value(&mode),
		)).Run()
		if err != nil {
			return err
		}
	}

	return newPorter(c.Context, s, console).DownloadSingle(c.Context, query, mode, s)
}
