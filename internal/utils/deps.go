package utils

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Dependency is an external executable the downloader relies on.
type Dependency struct {
	Name     string
	Binary   string
	Required bool
	HelpURL  string
}

// DependencyStatus is the probe result for one Dependency.
type DependencyStatus struct {
	Dependency
	Path    string
	Version string
	Err     error
}

// Found reports whether the binary was located and answered its version flag.
func (s DependencyStatus) Found() bool {
	return s.Err == nil
}

// DefaultDependencies lists yt-dlp (required) and ffmpeg (needed for audio extraction and thumbnails).
func DefaultDependencies(ytdlpBinary string) []Dependency {
	if ytdlpBinary == "" {
		ytdlpBinary = "yt-dlp"
	}
	return []Dependency{
		{Name: "yt-dlp", Binary: ytdlpBinary, Required: true, HelpURL: "https://github.com/yt-dlp/yt-dlp"},
		{Name: "ffmpeg", Binary: "ffmpeg", Required: false, HelpURL: "https://ffmpeg.org/download.html"},
	}
}

// CheckDependencies locates every dependency on PATH and asks it for its version.
func CheckDependencies(ctx context.Context, deps []Dependency) []DependencyStatus {
	statuses := make([]DependencyStatus, 0, len(deps))
	for _, dep := range deps {
		statuses = append(statuses, probe(ctx, dep))
	}
	return statuses
}

func probe(ctx context.Context, dep Dependency) DependencyStatus {
	status := DependencyStatus{Dependency: dep}

	path, err := exec.LookPath(dep.Binary)
	if err != nil {
		status.Err = fmt.Errorf("%s not found: %w", dep.Binary, err)
		return status
	}
	status.Path = path

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	version, err := versionOf(ctx, dep, path)
	if err != nil {
		status.Err = fmt.Errorf("%s version: %w", dep.Binary, err)
		return status
	}
	status.Version = firstLine(version)
	return status
}

func versionOf(ctx context.Context, dep Dependency, path string) (string, error) {
	if dep.Name == "yt-dlp" {
		res, err := ytdlp.New().
			SetExecutable(path).
			SetEnvVar("HOME", os.Getenv("HOME")).
			Version(ctx)
		if err != nil {
			return "", err
		}
		return res.Stdout, nil
	}

	// ffmpeg only understands the single-dash form
	flag := "--version"
	if dep.Name == "ffmpeg" {
		flag = "-version"
	}
	out, err := exec.CommandContext(ctx, path, flag).Output()
	return string(out), err
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
