package reconcile

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkeeper/pkg/config"
	"github.com/arthur-debert/podkeeper/pkg/filesystem"
	"github.com/arthur-debert/podkeeper/pkg/installer"
	"github.com/arthur-debert/podkeeper/pkg/ledger"
	"github.com/arthur-debert/podkeeper/pkg/logging"
	"github.com/arthur-debert/podkeeper/pkg/manifest"
	"github.com/arthur-debert/podkeeper/pkg/paths"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// Options contains the collaborators of an Engine
type Options struct {
	Paths  paths.Paths
	Config *config.Config
	// FS backs the ledger and the Podfile. Defaults to the OS filesystem.
	FS        types.FS
	Installer installer.Installer
	ToolCheck installer.ToolCheck
	// Logger defaults to the "reconcile" component logger.
	Logger *zerolog.Logger
}

// Engine applies plugin dependency changes to one project.
type Engine struct {
	paths     paths.Paths
	cfg       *config.Config
	fs        types.FS
	installer installer.Installer
	toolCheck installer.ToolCheck
	logger    zerolog.Logger
}

// New creates an Engine. Missing collaborators fall back to the OS
// filesystem, the embedded default config and the configured pod tool.
func New(opts Options) (*Engine, error) {
	logger := logging.GetLogger("reconcile")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Default(); err != nil {
			return nil, err
		}
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	inst := opts.Installer
	if inst == nil {
		inst = installer.NewPodInstaller(cfg.Installer)
	}
	check := opts.ToolCheck
	if check == nil {
		check = installer.NewPodToolCheck(cfg.Installer)
	}

	return &Engine{
		paths:     opts.Paths,
		cfg:       cfg,
		fs:        fsys,
		installer: inst,
		toolCheck: check,
		logger:    logger,
	}, nil
}

// Add registers the units a plugin depends on. Units seen for the first
// time are written to the Podfile; known units only gain a reference.
func (e *Engine) Add(ctx context.Context, pluginID string, specs []types.DependencySpec, opts types.InstallOptions) (*Result, error) {
	return e.run(ctx, OperationAdd, pluginID, specs, opts)
}

// Remove releases the units a plugin depended on. Units nobody references
// any more leave the Podfile.
func (e *Engine) Remove(ctx context.Context, pluginID string, specs []types.DependencySpec, opts types.InstallOptions) (*Result, error) {
	return e.run(ctx, OperationRemove, pluginID, specs, opts)
}

// Install runs the external installer against the current Podfile without
// touching the ledger.
func (e *Engine) Install(ctx context.Context) error {
	if err := e.toolCheck.Check(ctx); err != nil {
		return err
	}
	return e.installer.Run(ctx, e.installDir())
}

func (e *Engine) run(ctx context.Context, op Operation, pluginID string, specs []types.DependencySpec, opts types.InstallOptions) (*Result, error) {
	logger := e.logger.With().
		Str("plugin", pluginID).
		Str("operation", string(op)).
		Logger()

	logger.Debug().
		Int("specs", len(specs)).
		Bool("link", opts.Link).
		Bool("alternate_packaging", opts.AlternatePackaging).
		Msg("Reconciling plugin dependencies")

	p, err := e.prepare(pluginID, specs, opts)
	if err != nil {
		return nil, err
	}
	for _, name := range p.unresolved {
		logger.Warn().Str("variable", name).Msg("Variable not provided, substituting an empty string")
	}

	led, podfile, err := e.load()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Plugin:     pluginID,
		Operation:  op,
		Skipped:    p.skipped,
		Unresolved: p.unresolved,
	}
	for _, u := range p.skipped {
		logger.Debug().Stringer("unit", u).Msg("Skipped for alternate packaging")
	}

	s := &session{logger: logger, ledger: led, podfile: podfile, result: res}
	for _, u := range p.units {
		if op == OperationAdd {
			s.add(u)
		} else {
			s.remove(u)
		}
	}

	return res, e.commit(ctx, logger, led, podfile, res)
}

func (e *Engine) load() (*ledger.Ledger, *manifest.Podfile, error) {
	led, err := ledger.Load(e.fs, e.paths.LedgerPath())
	if err != nil {
		return nil, nil, err
	}
	podfile, err := manifest.Load(e.fs, e.paths.ManifestPath(), e.manifestOptions())
	if err != nil {
		return nil, nil, err
	}
	return led, podfile, nil
}

// commit persists the ledger, then the Podfile if it changed, and then
// runs the installer. Nothing written is rolled back on failure.
func (e *Engine) commit(ctx context.Context, logger zerolog.Logger, led *ledger.Ledger, podfile *manifest.Podfile, res *Result) error {
	if err := led.Write(); err != nil {
		return err
	}

	if !podfile.IsDirty() {
		logger.Info().Msg("Podfile unchanged, skipping pod install")
		return nil
	}

	if err := podfile.Write(); err != nil {
		return err
	}
	res.ManifestChanged = true
	logger.Info().Str("path", podfile.Path()).Msg("Podfile updated")

	if err := e.Install(ctx); err != nil {
		return err
	}
	res.InstallerRan = true
	return nil
}

func (e *Engine) manifestOptions() manifest.Options {
	return manifest.Options{
		TargetName:      e.cfg.Manifest.Target,
		ProjectName:     e.cfg.Manifest.Project,
		Platform:        e.cfg.Manifest.Platform,
		PlatformVersion: e.cfg.Manifest.PlatformVersion,
	}
}

// installDir is where the installer runs: the directory of the Podfile.
func (e *Engine) installDir() string {
	return filepath.Dir(e.paths.ManifestPath())
}
