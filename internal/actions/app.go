package actions

import (
	"github.com/urfave/cli/v2"
)

// NewApp builds the tunepull command line.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "tunepull",
		Usage: "Download Spotify playlists and single tracks or videos with yt-dlp.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path of the settings file",
				EnvVars: []string{"TUNEPULL_CONFIG"},
			},
		},
		Action: Menu,
		Commands: []*cli.Command{
			{
				Name:      "playlist",
				Usage:     "Download every track of a Spotify playlist as audio",
				ArgsUsage: "<playlist url or uri>",
				Action:    ConvertPlaylist,
			},
			{
				Name:      "get",
				Usage:     "Download a single URL or search result",
				ArgsUsage: "<url or search terms>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "video", Aliases: []string{"v"}, Usage: "download video instead of audio"},
				},
				Action: DownloadSingle,
			},
			{
				Name:      "export",
				Usage:     "Export the tracks of a playlist to CSV",
				ArgsUsage: "<playlist url or uri>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "destination CSV file"},
				},
				Action: ExportPlaylist,
			},
			{
				Name:  "configure",
				Usage: "Change persisted settings",
				Subcommands: []*cli.Command{
					{
						Name:  "spotify",
						Usage: "Set the Spotify client credentials",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "id", Usage: "client ID"},
							&cli.StringFlag{Name: "secret", Usage: "client secret"},
						},
						Action: ConfigureSpotify,
					},
					{
						Name:      "output",
						Usage:     "Set the output directory",
						ArgsUsage: "[path]",
						Action:    SetOutputDirectory,
					},
					{
						Name:  "download",
						Usage: "Set audio quality and container formats",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "quality", Usage: "audio quality, e.g. 128K, 192K, 320K"},
							&cli.StringFlag{Name: "format", Usage: "audio format, e.g. mp3, m4a, flac"},
							&cli.StringFlag{Name: "video-format", Usage: "video container, e.g. mp4, mkv"},
							&cli.StringFlag{Name: "binary", Usage: "yt-dlp executable"},
							&cli.StringFlag{Name: "timeout", Usage: "limit per download, e.g. 10m"},
						},
						Action: ConfigureDownload,
					},
				},
			},
			{
				Name:   "doctor",
				Usage:  "Check that yt-dlp and ffmpeg are installed",
				Action: Doctor,
			},
		},
	}
}
