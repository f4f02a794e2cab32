package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"tunepull/internal/utils"
)

// ConvertPlaylist downloads a playlist given as the first argument, or asks for one.
func ConvertPlaylist(c *cli.Context) error {
	console := newConsole(c)
	s, _, err := loadSettings(c, console)
	if err != nil {
		return err
	}

	ref := strings.TrimSpace(c.Args().First())
	if ref == "" {
		if err := huh.NewInput().
			Title("Enter Spotify Playlist URL").
			Value(&ref).
			Run(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(ref) == "" {
		return errors.New("no playlist URL provided")
	}

	p := newPorter(c.Context, s, console)
	summary, err := p.ConvertPlaylist(c.Context, ref, s)
	if summary.Dir != "" {
		if files, size, sizeErr := utils.DirSize(summary.Dir); sizeErr == nil {
			console.Info(fmt.Sprintf("%s holds %d files (%s)", summary.Dir, files, humanize.Bytes(size)))
		}
	}
	return err
}
