// Package config loads and saves the tunepull settings file.
//
// Settings is a plain value: callers load it once, pass it down, and use the
// With* helpers to derive a modified copy before calling Save.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Environment variables that fill empty settings.
const (
	EnvSpotifyID     = "SPOTIFY_ID"
	EnvSpotifySecret = "SPOTIFY_SECRET"
	EnvYouTubeAPIKey = "YOUTUBE_API_KEY"
)

// Default values
const (
	DefaultAudioQuality = "192K"
	DefaultAudioFormat  = "mp3"
	DefaultVideoFormat  = "mp4"
	DefaultBinary       = "yt-dlp"
	DefaultOutputFolder = "Spotify Downloads"

	relConfigPath = "tunepull/config.toml"
)

// Spotify holds the client credentials issued by the Spotify developer dashboard.
type Spotify struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// Output controls where downloads land.
type Output struct {
	Path string `toml:"output_path"`
}

// Download holds the yt-dlp settings.
type Download struct {
	AudioQuality string `toml:"audio_quality"`
	AudioFormat  string `toml:"format"`
	VideoFormat  string `toml:"video_format"`
	Binary       string `toml:"binary"`
	// Timeout bounds one yt-dlp run, e.g. "10m". Empty means no limit.
	Timeout string `toml:"timeout"`
}

// TimeoutDuration parses Timeout. An empty or zero value yields 0.
func (d Download) TimeoutDuration() (time.Duration, error) {
	if strings.TrimSpace(d.Timeout) == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(d.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid download timeout %q: %w", d.Timeout, err)
	}
	if dur < 0 {
		return 0, fmt.Errorf("invalid download timeout %q: negative", d.Timeout)
	}
	return dur, nil
}

// YouTube holds the optional Data API key used to resolve searches.
type YouTube struct {
	APIKey string `toml:"api_key"`
}

// Settings is the full configuration snapshot for one invocation.
type Settings struct {
	Spotify  Spotify  `toml:"spotify"`
	Output   Output   `toml:"settings"`
	Download Download `toml:"download"`
	YouTube  YouTube  `toml:"youtube"`
}

// Default returns the settings written to a fresh config file.
func Default() Settings {
	return Settings{
		Output: Output{Path: DefaultOutputPath()},
		Download: Download{
			AudioQuality: DefaultAudioQuality,
			AudioFormat:  DefaultAudioFormat,
			VideoFormat:  DefaultVideoFormat,
			Binary:       DefaultBinary,
		},
	}
}

// DefaultOutputPath is "Spotify Downloads" inside the user's music directory.
func DefaultOutputPath() string {
	music := xdg.UserDirs.Music
	if music == "" {
		if home, err := os.UserHomeDir(); err == nil {
			music = filepath.Join(home, "Music")
		}
	}
	return filepath.Join(music, DefaultOutputFolder)
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(relConfigPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// HasCredentials reports whether both Spotify credentials are set.
func (s Settings) HasCredentials() bool {
	return s.Spotify.ClientID != "" && s.Spotify.ClientSecret != ""
}

// WithCredentials returns a copy of s with new Spotify credentials.
func (s Settings) WithCredentials(clientID, clientSecret string) Settings {
	s.Spotify = Spotify{ClientID: strings.TrimSpace(clientID), ClientSecret: strings.TrimSpace(clientSecret)}
	return s
}

// WithOutputPath returns a copy of s with a new output root.
func (s Settings) WithOutputPath(path string) Settings {
	s.Output.Path = path
	return s
}

// WithDownload returns a copy of s where every non-empty field of d replaces the current value.
func (s Settings) WithDownload(d Download) Settings {
	if d.AudioQuality != "" {
		s.Download.AudioQuality = d.AudioQuality
	}
	if d.AudioFormat != "" {
		s.Download.AudioFormat = strings.TrimPrefix(d.AudioFormat, ".")
	}
	if d.VideoFormat != "" {
		s.Download.VideoFormat = strings.TrimPrefix(d.VideoFormat, ".")
	}
	if d.Binary != "" {
		s.Download.Binary = d.Binary
	}
	if d.Timeout != "" {
		s.Download.Timeout = d.Timeout
	}
	return s
}

// Validate checks values that would otherwise only fail mid-download.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Output.Path) == "" {
		return errors.New("output path is empty")
	}
	if _, err := s.Download.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// Load reads the settings file at path. A missing file is created with defaults,
// and keys missing from an existing file keep their default values.
// created reports whether the file was written by this call.
func Load(path string) (s Settings, created bool, err error) {
	s = Default()

	_, err = toml.DecodeFile(path, &s)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := Save(path, s); err != nil {
			return s, false, err
		}
		created = true
	case err != nil:
		return s, false, fmt.Errorf("read config %s: %w", path, err)
	}

	s = fillDefaults(s)
	return applyEnv(s), created, nil
}

// Save writes s to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// LoadDotEnv loads a .env file from the working directory when one exists.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// fillDefaults restores defaults for keys explicitly set to empty strings.
func fillDefaults(s Settings) Settings {
	def := Default()
	if s.Output.Path == "" {
		s.Output.Path = def.Output.Path
	}
	if s.Download.AudioQuality == "" {
		s.Download.AudioQuality = def.Download.AudioQuality
	}
	if s.Download.AudioFormat == "" {
		s.Download.AudioFormat = def.Download.AudioFormat
	}
	if s.Download.VideoFormat == "" {
		s.Download.VideoFormat = def.Download.VideoFormat
	}
	if s.Download.Binary == "" {
		s.Download.Binary = def.Download.Binary
	}
	return s
}

func applyEnv(s Settings) Settings {
	if s.Spotify.ClientID == "" {
		s.Spotify.ClientID = os.Getenv(EnvSpotifyID)
	}
	if s.Spotify.ClientSecret == "" {
		s.Spotify.ClientSecret = os.Getenv(EnvSpotifySecret)
	}
	if s.YouTube.APIKey == "" {
		s.YouTube.APIKey = os.Getenv(EnvYouTubeAPIKey)
	}
	return s
}
