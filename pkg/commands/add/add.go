// Package add registers a plugin's pod dependencies with a project.
package add

import (
	"context"

	"github.com/arthur-debert/podkeeper/pkg/commands/internal"
	"github.com/arthur-debert/podkeeper/pkg/installer"
	"github.com/arthur-debert/podkeeper/pkg/logging"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// AddOptions defines the options for the AddDependencies command.
type AddOptions struct {
	// ProjectRoot is the generated iOS project. Empty means discover it.
	ProjectRoot string
	// PluginDir is a plugin directory holding pods.toml or pods.yaml. When
	// set, PluginID only overrides the declared id and Specs is ignored.
	PluginDir string
	PluginID  string
	Specs     []types.DependencySpec
	// Install carries the per-call variables and flags.
	Install types.InstallOptions

	FS        types.FS
	Installer installer.Installer
	ToolCheck installer.ToolCheck
}

// AddDependencies registers the plugin's units, updates the Podfile and
// runs pod install when the Podfile changed.
func AddDependencies(ctx context.Context, opts AddOptions) (*reconcile.Result, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "AddDependencies").Msg("Executing command")

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

	result, err := env.Engine.Add(ctx, pluginID, specs, opts.Install)
	if err != nil {
		return result, err
	}

	log.Info().
		Str("command", "AddDependencies").
		Str("plugin", pluginID).
		Int("added", len(result.Added)).
		Bool("installed", result.InstallerRan).
		Msg("Command finished")
	return result, nil
}
