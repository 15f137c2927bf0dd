package installer

import (
	"context"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkeeper/pkg/config"
	"github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/logging"
)

// PodToolCheck verifies the installer binary is on PATH and, when a minimum
// version is configured, that "<tool> --version" satisfies it.
type PodToolCheck struct {
	Tool       string
	MinVersion string

	lookPath func(file string) (string, error)
	version  func(ctx context.Context, path string) (string, error)
	logger   zerolog.Logger
}

// NewPodToolCheck creates a check for the configured installer command.
func NewPodToolCheck(cfg config.InstallerConfig) *PodToolCheck {
	return &PodToolCheck{
		Tool:       cfg.Command,
		MinVersion: cfg.MinVersion,
		lookPath:   exec.LookPath,
		version:    toolVersion,
		logger:     logging.GetLogger("installer.check"),
	}
}

// Check returns ErrToolMissing naming the tool when it cannot be used.
func (c *PodToolCheck) Check(ctx context.Context) error {
	path, err := c.lookPath(c.Tool)
	if err != nil {
		return errors.Newf(errors.ErrToolMissing, "%s not found; install CocoaPods (https://cocoapods.org) and retry", c.Tool).
			WithDetail("tool", c.Tool).
			WithCause(err)
	}

	if c.MinVersion == "" {
		return nil
	}

	out, err := c.version(ctx, path)
	if err != nil {
		return errors.Newf(errors.ErrToolMissing, "%s --version failed", c.Tool).
			WithDetail("tool", c.Tool).
			WithCause(err)
	}

	if err := checkVersion(out, c.MinVersion); err != nil {
		return errors.Newf(errors.ErrToolMissing, "%s: %v", c.Tool, err).
			WithDetail("tool", c.Tool).
			WithDetail("version", strings.TrimSpace(out))
	}

	c.logger.Debug().
		Str("tool", path).
		Str("version", strings.TrimSpace(out)).
		Msg("Installer tool available")
	return nil
}

// checkVersion compares the first line of a --version output with minVersion.
func checkVersion(output, minVersion string) error {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	got, err := semver.NewVersion(strings.TrimSpace(line))
	if err != nil {
		return errors.Newf(errors.ErrInvalidInput, "cannot parse version %q", line)
	}
	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		return err
	}
	if !constraint.Check(got) {
		return errors.Newf(errors.ErrInvalidInput, "version %s is older than the required %s", got, minVersion)
	}
	return nil
}

func toolVersion(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	return string(out), err
}
