// Package install reruns the external dependency installer for a project.
//
// add and remove run the installer themselves when the Podfile changed. This
// command exists for convergence after a failed install: the ledger and the
// Podfile are already written, so only pod install needs repeating.
package install

import (
	"context"

	"github.com/arthur-debert/podkeeper/pkg/commands/internal"
	"github.com/arthur-debert/podkeeper/pkg/installer"
	"github.com/arthur-debert/podkeeper/pkg/logging"
)

// InstallOptions defines the options for the RunInstaller command.
type InstallOptions struct {
	ProjectRoot string
	Installer   installer.Installer
	ToolCheck   installer.ToolCheck
}

// RunInstaller checks the installer tool and runs it in the project.
func RunInstaller(ctx context.Context, opts InstallOptions) error {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "RunInstaller").Msg("Executing command")

	env, err := internal.NewEnvironment(internal.EnvironmentOptions{
		ProjectRoot: opts.ProjectRoot,
		Installer:   opts.Installer,
		ToolCheck:   opts.ToolCheck,
	})
	if err != nil {
		return err
	}

	if err := env.Engine.Install(ctx); err != nil {
		return err
	}

	log.Info().Str("command", "RunInstaller").Msg("Command finished")
	return nil
}
