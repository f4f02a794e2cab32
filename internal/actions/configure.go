package actions

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v2"

	"tunepull/internal/config"
	"tunepull/internal/utils"
)

const spotifyDashboardURL = "https://developer.spotify.com/dashboard"

// ConfigureSpotify stores the Spotify client credentials, asking for any not given as flags.
func ConfigureSpotify(c *cli.Context) error {
	console := newConsole(c)
	s, path, err := loadSettings(c, console)
	if err != nil {
		return err
	}

	id, secret := c.String("id"), c.String("secret")
	if id == "" || secret == "" {
		console.Header("Spotify API Configuration")
		console.Println("To get Spotify API credentials:")
		console.Println("1. Go to " + spotifyDashboardURL)
		console.Println("2. Log in and create an app")
		console.Println("3. Copy the Client ID and Client Secret")

		var open bool
		if err := huh.NewConfirm().
			Title("Open the Spotify dashboard in your browser?").
			Value(&open).
			Run(); err != nil {
			return err
		}
		if open {
			if err := utils.OpenBrowser(spotifyDashboardURL); err != nil {
				console.Warning(fmt.Sprintf("%v. Please open %s manually", err, spotifyDashboardURL))
			}
		}

		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Enter Spotify Client ID").Value(&id),
			huh.NewInput().Title("Enter Spotify Client Secret").EchoMode(huh.EchoModePassword).Value(&secret),
		)).Run()
		if err != nil {
			return err
		}
	}

	if strings.TrimSpace(id) == "" || strings.TrimSpace(secret) == "" {
		return errors.New("invalid credentials provided")
	}

	if err := saveSettings(path, s.WithCredentials(id, secret)); err != nil {
		return err
	}
	console.Success("Spotify credentials saved successfully!")
	return nil
}

// SetOutputDirectory changes the output root. An empty answer keeps the current one.
func SetOutputDirectory(c *cli.Context) error {
	console := newConsole(c)
	s, path, err := loadSettings(c, console)
	if err != nil {
		return err
	}

	dir := strings.TrimSpace(c.Args().First())
	if dir == "" {
		console.Info(fmt.Sprintf("Current output directory: %s", s.Output.Path))
		if err := huh.NewInput().
			Title("Enter new output directory path (leave empty to keep current)").
			Value(&dir).
			Run(); err != nil {
			return err
		}
		dir = strings.TrimSpace(dir)
	}
	if dir == "" {
		console.Info("Output directory unchanged")
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}
	if err := saveSettings(path, s.WithOutputPath(dir)); err != nil {
		return err
	}
	console.Success(fmt.Sprintf("Output path set to: %s", dir))
	return nil
}

// ConfigureDownload updates yt-dlp settings from flags or, with no flags, from a form
// prefilled with the current values.
func ConfigureDownload(c *cli.Context) error {
	console := newConsole(c)
	s, path, err := loadSettings(c, console)
	if err != nil {
		return err
	}

	update := config.Download{
		AudioQuality: c.String("quality"),
		AudioFormat:  c.String("format"),
		VideoFormat:  c.String("video-format"),
		Binary:       c.String("binary"),
		Timeout:      c.String("timeout"),
	}

	if update == (config.Download{}) {
		update = s.Download
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Audio quality (e.g. 128K, 192K, 320K)").Value(&update.AudioQuality),
			huh.NewInput().Title("Audio format (mp3, m4a, flac, ...)").Value(&update.AudioFormat),
			huh.NewInput().Title("Video format (mp4, mkv, ...)").Value(&update.VideoFormat),
			huh.NewInput().Title("Timeout per download (empty for none)").Value(&update.Timeout),
		)).Run()
		if err != nil {
			return err
		}
	}

	next := s.WithDownload(update)
	if err := saveSettings(path, next); err != nil {
		return err
	}

	d := next.Download
	console.Success(fmt.Sprintf("Download settings saved: audio %s @ %s, video %s", d.AudioFormat, d.AudioQuality, d.VideoFormat))
	return nil
}
