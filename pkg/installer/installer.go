package installer

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkeeper/pkg/config"
	"github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/logging"
)

// Installer runs the external dependency installer in a project directory.
type Installer interface {
	Run(ctx context.Context, projectDir string) error
}

// ToolCheck confirms the installer tool is usable.
type ToolCheck interface {
	Check(ctx context.Context) error
}

// PodInstaller runs the configured installer command, streaming its output.
type PodInstaller struct {
	Command string
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer
	logger  zerolog.Logger
}

// NewPodInstaller creates an installer from config, writing to the
// process's own stdout and stderr.
func NewPodInstaller(cfg config.InstallerConfig) *PodInstaller {
	return &PodInstaller{
		Command: cfg.Command,
		Args:    append([]string(nil), cfg.Args...),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		logger:  logging.GetLogger("installer"),
	}
}

// Run executes the installer in projectDir and blocks until it exits. A
// non-zero exit returns ErrInstallerFailed carrying the captured stderr.
func (i *PodInstaller) Run(ctx context.Context, projectDir string) error {
	defer logging.Timed(i.logger, "installer")()

	i.logger.Debug().
		Str("command", i.Command).
		Strs("args", i.Args).
		Str("dir", projectDir).
		Msg("Running installer")

	var captured bytes.Buffer
	cmd := exec.CommandContext(ctx, i.Command, i.Args...)
	cmd.Dir = projectDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = i.Stdout
	cmd.Stderr = io.MultiWriter(i.Stderr, &captured)

	if err := cmd.Run(); err != nil {
		code := errors.ErrInstallerFailed
		if isNotFound(err) {
			code = errors.ErrToolMissing
		}
		return errors.New(code, "'"+i.commandLine()+"' failed").
			WithDetail("dir", projectDir).
			WithDetail("stderr", strings.TrimSpace(captured.String())).
			WithCause(err)
	}

	i.logger.Info().
		Str("command", i.commandLine()).
		Str("dir", projectDir).
		Msg("Installer finished")
	return nil
}

func (i *PodInstaller) commandLine() string {
	return strings.TrimSpace(i.Command + " " + strings.Join(i.Args, " "))
}

func isNotFound(err error) bool {
	var execErr *exec.Error
	return stderrors.As(err, &execErr)
}
