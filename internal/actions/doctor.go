package actions

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"tunepull/internal/config"
	"tunepull/internal/ui"
	"tunepull/internal/utils"
)

// ErrMissingDependencies is returned when a required executable is missing.
var ErrMissingDependencies = errors.New("missing dependencies")

// Doctor reports whether yt-dlp and ffmpeg are usable.
func Doctor(c *cli.Context) error {
	console := newConsole(c)
	s, _, err := loadSettings(c, console)
	if err != nil {
		return err
	}
	return checkDependencies(c, console, s)
}

func checkDependencies(c *cli.Context, console *ui.Console, s config.Settings) error {
	var missing []string
	for _, st := range utils.CheckDependencies(c.Context, utils.DefaultDependencies(s.Download.Binary)) {
		switch {
		case st.Found():
			console.Success(fmt.Sprintf("%s %s (%s)", st.Name, st.Version, st.Path))
		case st.Required:
			console.Error(fmt.Sprintf("%s: install from %s", st.Name, st.HelpURL))
			missing = append(missing, st.Name)
		default:
			console.Warning(fmt.Sprintf("%s not found - some features may not work properly (%s)", st.Name, st.HelpURL))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingDependencies, missing)
	}
	return nil
}
