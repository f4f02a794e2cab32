package actions

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v2"
)

// ExportPlaylist writes a playlist's tracks to CSV.
func ExportPlaylist(c *cli.Context) error {
	console := newConsole(c)
	s, _, err := loadSettings(c, console)
	if err != nil {
		return err
	}

	ref := strings.TrimSpace(c.Args().First())
	destFile := c.String("file")

	var fields []huh.Field
	if ref == "" {
		fields = append(fields, huh.NewInput().
			Title("Enter Spotify Playlist URL").
			Value(&ref))
	}
	if destFile == "" && ref == "" {
		destFile = "playlist.csv"
		fields = append(fields, huh.NewInput().
			Title("Enter the file path to save the exported playlist").
			Value(&destFile))
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}
	if destFile == "" {
		destFile = "playlist.csv"
	}
	if strings.TrimSpace(ref) == "" {
		return errors.New("no playlist URL provided")
	}

	p := newPorter(c.Context, s, console)
	export := func(ctx context.Context) error {
		_, err := p.ExportPlaylistToCSV(ctx, ref, destFile)
		return err
	}

	return withSpinner(c.Context, "Exporting...", export)
}
