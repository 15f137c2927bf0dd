// Package internal builds the per-project environment shared by the
// podkeeper commands.
package internal

import (
	"github.com/arthur-debert/podkeeper/pkg/config"
	"github.com/arthur-debert/podkeeper/pkg/filesystem"
	"github.com/arthur-debert/podkeeper/pkg/installer"
	"github.com/arthur-debert/podkeeper/pkg/logging"
	"github.com/arthur-debert/podkeeper/pkg/paths"
	"github.com/arthur-debert/podkeeper/pkg/plugins"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// EnvironmentOptions carries the collaborators a command may override.
// Zero values select the real implementations.
type EnvironmentOptions struct {
	ProjectRoot string
	FS          types.FS
	Installer   installer.Installer
	ToolCheck   installer.ToolCheck
}

// Environment is a project's resolved paths, configuration and engine.
type Environment struct {
	Paths  paths.Paths
	Config *config.Config
	FS     types.FS
	Engine *reconcile.Engine
}

// NewEnvironment locates the project, loads its configuration and builds
// the engine.
func NewEnvironment(opts EnvironmentOptions) (*Environment, error) {
	logger := logging.GetLogger("core.commands")

	root, err := paths.New(opts.ProjectRoot)
	if err != nil {
		return nil, err
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := config.Load(fsys, root.ProjectRoot())
	if err != nil {
		return nil, err
	}

	p, err := paths.New(root.ProjectRoot(), paths.WithFiles(cfg.Ledger.File, cfg.Manifest.File))
	if err != nil {
		return nil, err
	}

	engine, err := reconcile.New(reconcile.Options{
		Paths:     p,
		Config:    cfg,
		FS:        fsys,
		Installer: opts.Installer,
		ToolCheck: opts.ToolCheck,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("project", p.ProjectRoot()).
		Str("ledger", p.LedgerPath()).
		Str("manifest", p.ManifestPath()).
		Msg("Environment ready")

	return &Environment{Paths: p, Config: cfg, FS: fsys, Engine: engine}, nil
}

// PluginRequest names the plugin an add or remove applies to, either by
// directory or by an explicit id and spec list.
type PluginRequest struct {
	PluginDir string
	PluginID  string
	Specs     []types.DependencySpec
}

// Resolve returns the plugin id and specs of the request, reading the
// plugin declaration when a directory is given.
func (r PluginRequest) Resolve(fsys types.FS) (string, []types.DependencySpec, error) {
	if r.PluginDir == "" {
		return r.PluginID, r.Specs, nil
	}
	p, err := plugins.Load(fsys, r.PluginDir)
	if err != nil {
		return "", nil, err
	}
	id := p.ID
	if r.PluginID != "" {
		id = r.PluginID
	}
	return id, p.Specs, nil
}
