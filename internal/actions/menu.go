package actions

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v2"
)

type menuEntry struct {
	label  string
	action cli.ActionFunc
}

// Menu is the interactive entry point used when no command is given.
// Each choice runs the same action as its subcommand, prompting for input.
func Menu(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}

	console := newConsole(c)
	s, _, err := loadSettings(c, console)
	if err != nil {
		return err
	}
	if err := checkDependencies(c, console, s); err != nil {
		return err
	}

	entries := []menuEntry{
		{"Convert Spotify Playlist", ConvertPlaylist},
		{"Download Single YouTube Video/Music", DownloadSingle},
		{"Configure Spotify API", ConfigureSpotify},
		{"Set Output Directory", SetOutputDirectory},
		{"Download Settings", ConfigureDownload},
		{"Check Dependencies", Doctor},
	}
	options := make([]huh.Option[int], 0, len(entries)+1)
	for i, e := range entries {
		options = append(options, huh.NewOption(e.label, i))
	}
	exit := len(entries)
	options = append(options, huh.NewOption("Exit", exit))

	for {
		if err := c.Context.Err(); err != nil {
			return err
		}

		choice := exit
		err := huh.NewSelect[int]().
			Title("Spotify & YouTube Downloader").
			Options(options...).
			Value(&choice).
			Run()
		if errors.Is(err, huh.ErrUserAborted) || choice == exit {
			console.Success("Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		// failures go back to the menu
		if err := entries[choice].action(c); err != nil && !errors.Is(err, huh.ErrUserAborted) {
			console.Error(Describe(err))
		}
	}
}
