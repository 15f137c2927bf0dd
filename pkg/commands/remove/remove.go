// Package remove releases a plugin's pod dependencies from a project.
package remove

import (
	"context"

	"github.com/arthur-debert/podkeeper/pkg/commands/internal"
	"github.com/arthur-debert/podkeeper/pkg/installer"
	"github.com/arthur-debert/podkeeper/pkg/logging"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// RemoveOptions defines the options for the RemoveDependencies command.
type RemoveOptions struct {
	ProjectRoot string
	PluginDir   string
	PluginID    string
	Specs       []types.DependencySpec
	Install     types.InstallOptions

	FS        types.FS
	Installer installer.Installer
	ToolCheck installer.ToolCheck
}

// RemoveDependencies drops one reference from each of the plugin's units
// and removes from the Podfile those no longer referenced.
func RemoveDependencies(ctx context.Context, opts RemoveOptions) (*reconcile.Result, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "RemoveDependencies").Msg("Executing command")

	env, err := internal.NewEnvironment(internal.EnvironmentOptions{
		ProjectRoot: opts.ProjectRoot,
		FS:          opts.FS,
		Installer:   opts.Installer,
		ToolCheck:   opts.ToolCheck,
	})
	if err != nil {
		return nil, err
	}

	req := internal.PluginRequest{PluginDir: opts.PluginDir, PluginID: opts.PluginID, Specs: opts.Specs}
	pluginID, specs, err := req.Resolve(env.FS)
	if err != nil {
		return nil, err
	}

	result, err := env.Engine.Remove(ctx, pluginID, specs, opts.Install)
	if err != nil {
		return result, err
	}

	log.Info().
		Str("command", "RemoveDependencies").
		Str("plugin", pluginID).
		Int("removed", len(result.Removed)).
		Bool("installed", result.InstallerRan).
		Msg("Command finished")
	return result, nil
}
