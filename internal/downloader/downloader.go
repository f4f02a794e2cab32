// Package downloader runs yt-dlp for a single URL or search query.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"tunepull/internal/config"
)

// Mode selects between audio extraction and video download.
type Mode int

const (
	Audio Mode = iota
	Video
)

func (m Mode) String() string {
	if m == Video {
		return "video"
	}
	return "audio"
}

// searchSuffix biases a free-text search toward the canonical upload.
func (m Mode) searchSuffix() string {
	if m == Video {
		return "official video"
	}
	return "official audio"
}

const (
	outputTemplate = "%(title)s.%(ext)s"
	videoSelector  = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best"
)

var urlPattern = regexp.MustCompile(`^https?://`)

// IsURL reports whether query is a direct http(s) locator.
func IsURL(query string) bool {
	return urlPattern.MatchString(query)
}

// SearchTerm is the free-text search sent for query in mode.
func SearchTerm(query string, mode Mode) string {
	return query + " " + mode.searchSuffix()
}

// Resolver turns a free-text query into a direct media URL.
type Resolver interface {
	Resolve(ctx context.Context, query string, mode Mode) (string, error)
}

// DownloadError is returned when yt-dlp could not be started or exited non-zero.
// ExitCode is -1 when the process never ran or was killed.
type DownloadError struct {
	Query    string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *DownloadError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("download %q failed: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("download %q failed (exit code %d): %s", e.Query, e.ExitCode, msg)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Downloader invokes the yt-dlp executable, one process per call.
type Downloader struct {
	resolver Resolver
	logger   *log.Logger
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithResolver resolves free-text queries before handing them to yt-dlp.
func WithResolver(r Resolver) Option {
	return func(d *Downloader) {
		d.resolver = r
	}
}

// WithLogger sets the logger used for resolver fallbacks.
func WithLogger(l *log.Logger) Option {
	return func(d *Downloader) {
		d.logger = l
	}
}

// New creates a Downloader.
func New(opts ...Option) *Downloader {
	d := &Downloader{logger: log.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch downloads query into destDir and blocks until yt-dlp exits.
// The file name is chosen by yt-dlp from the remote title.
func (d *Downloader) Fetch(ctx context.Context, query, destDir string, mode Mode, s config.Download) error {
	timeout, err := s.TimeoutDuration()
	if err != nil {
		return &DownloadError{Query: query, ExitCode: -1, Err: err}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	target := d.target(ctx, query, mode)

	result, err := Command(destDir, mode, s).Run(ctx, target)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		dlErr := &DownloadError{Query: query, ExitCode: -1, Err: err}
		if result != nil {
			dlErr.ExitCode = result.ExitCode
			dlErr.Stderr = result.Stderr
		}
		return dlErr
	}
	return nil
}

// target returns the positional argument for yt-dlp.
func (d *Downloader) target(ctx context.Context, query string, mode Mode) string {
	if IsURL(query) {
		return query
	}
	if d.resolver != nil {
		url, err := d.resolver.Resolve(ctx, query, mode)
		if err == nil {
			return url
		}
		d.logger.Printf("resolve %q: %v, falling back to yt-dlp search", query, err)
	}
	return "ytsearch1:" + SearchTerm(query, mode)
}

// Command returns the yt-dlp invocation for downloading into destDir.
// The executable is s.Binary, looked up on PATH when it has no directory part.
func Command(destDir string, mode Mode, s config.Download) *ytdlp.Command {
	cmd := ytdlp.New().
		SetExecutable(orDefault(s.Binary, config.DefaultBinary)).
		// the child only sees the variables set here; yt-dlp keeps its config and cache under HOME
		SetEnvVar("HOME", os.Getenv("HOME")).
		Output(filepath.Join(destDir, outputTemplate)).
		Quiet().
		NoWarnings()

	switch mode {
	case Video:
		cmd.Format(videoSelector).
			MergeOutputFormat(orDefault(s.VideoFormat, config.DefaultVideoFormat))
	default:
		cmd.ExtractAudio().
			AudioFormat(orDefault(s.AudioFormat, config.DefaultAudioFormat)).
			AudioQuality(orDefault(s.AudioQuality, config.DefaultAudioQuality)).
			EmbedThumbnail().
			EmbedMetadata()
	}
	return cmd
}

// BuildArgs returns the arguments Command passes to yt-dlp for target, in order.
func BuildArgs(target, destDir string, mode Mode, s config.Download) []string {
	var args []string
	for _, f := range Command(destDir, mode, s).GetFlagConfig().ToFlags() {
		args = append(args, f.Raw()...)
	}
	return append(args, target)
}

// IsTimeout reports whether err came from a download that hit its deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
