package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ProjectConfigFile is the per-project override file name
const ProjectConfigFile = ".podkeeper.toml"

// UserConfigFile is the name of the user-wide config under the XDG config
// directory
const UserConfigFile = "config.toml"

// EnvPrefix prefixes every environment override
const EnvPrefix = "PODKEEPER_"

// Config is podkeeper's resolved configuration
type Config struct {
	Manifest  ManifestConfig  `koanf:"manifest"`
	Ledger    LedgerConfig    `koanf:"ledger"`
	Installer InstallerConfig `koanf:"installer"`
	Variables VariablesConfig `koanf:"variables"`
}

// ManifestConfig describes the generated Podfile
type ManifestConfig struct {
	File            string `koanf:"file"`
	Target          string `koanf:"target"`
	Project         string `koanf:"project"`
	Platform        string `koanf:"platform"`
	PlatformVersion string `koanf:"platform_version"`
}

// LedgerConfig describes the reference-count ledger
type LedgerConfig struct {
	File string `koanf:"file"`
}

// InstallerConfig describes the external dependency installer
type InstallerConfig struct {
	Command    string   `koanf:"command"`
	Args       []string `koanf:"args"`
	MinVersion string   `koanf:"min_version"`
}

// VariablesConfig controls placeholder resolution
type VariablesConfig struct {
	Strict bool `koanf:"strict"`
}

// Validate checks the fields every operation depends on.
func (c *Config) Validate() error {
	if c.Manifest.File == "" {
		return fmt.Errorf("manifest.file must be set")
	}
	if c.Manifest.Target == "" {
		return fmt.Errorf("manifest.target must be set")
	}
	if c.Ledger.File == "" {
		return fmt.Errorf("ledger.file must be set")
	}
	if c.Ledger.File == c.Manifest.File {
		return fmt.Errorf("ledger.file and manifest.file must differ")
	}
	if c.Installer.Command == "" {
		return fmt.Errorf("installer.command must be set")
	}
	if c.Installer.MinVersion != "" {
		if _, err := semver.NewVersion(c.Installer.MinVersion); err != nil {
			return fmt.Errorf("installer.min_version %q: %w", c.Installer.MinVersion, err)
		}
	}
	return nil
}
