package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/podkeeper/pkg/config"
	"github.com/arthur-debert/podkeeper/pkg/errors"
)

// Environment variable names
const (
	// EnvProjectRoot points podkeeper at a project explicitly
	EnvProjectRoot = "PODKEEPER_PROJECT"
)

// Default file names, overridable through config
const (
	DefaultLedgerFile   = "pods.json"
	DefaultManifestFile = "Podfile"
)

// Paths provides the locations podkeeper reads and writes for one project
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	ConfigPath() string
	LedgerPath() string
	ManifestPath() string
}

type paths struct {
	projectRoot  string
	usedFallback bool
	ledgerFile   string
	manifestFile string
}

// Option customizes a Paths instance
type Option func(*paths)

// WithFiles sets the ledger and Podfile names, relative to the project root.
// Empty names keep the defaults.
func WithFiles(ledgerFile, manifestFile string) Option {
	return func(p *paths) {
		if ledgerFile != "" {
			p.ledgerFile = ledgerFile
		}
		if manifestFile != "" {
			p.manifestFile = manifestFile
		}
	}
}

// New creates a Paths instance for projectRoot. If projectRoot is empty it
// is determined by FindProjectRoot.
func New(projectRoot string, opts ...Option) (Paths, error) {
	p := &paths{
		ledgerFile:   DefaultLedgerFile,
		manifestFile: DefaultManifestFile,
	}

	if projectRoot == "" {
		root, usedFallback, err := FindProjectRoot()
		if err != nil {
			return nil, err
		}
		p.projectRoot = root
		p.usedFallback = usedFallback
	} else {
		p.projectRoot = expandHome(projectRoot)
	}

	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "project root %s", absRoot)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "project root %s is not a directory", absRoot)
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *paths) ProjectRoot() string  { return p.projectRoot }
func (p *paths) UsedFallback() bool   { return p.usedFallback }
func (p *paths) ConfigPath() string   { return filepath.Join(p.projectRoot, config.ProjectConfigFile) }
func (p *paths) LedgerPath() string   { return p.resolve(p.ledgerFile) }
func (p *paths) ManifestPath() string { return p.resolve(p.manifestFile) }

func (p *paths) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.projectRoot, name)
}

// FindProjectRoot determines the project root using the following priority:
// 1. PODKEEPER_PROJECT environment variable (if set)
// 2. The nearest ancestor of the working directory holding .podkeeper.toml,
// a ledger or a Podfile
// 3. Current working directory (fallback, reported through the bool)
func FindProjectRoot() (string, bool, error) {
	if root := os.Getenv(EnvProjectRoot); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInternal, "failed to get current directory")
	}

	for dir := cwd; ; dir = filepath.Dir(dir) {
		for _, marker := range []string{config.ProjectConfigFile, DefaultLedgerFile, DefaultManifestFile} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, false, nil
			}
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}

	return cwd, true, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
