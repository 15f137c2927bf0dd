package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	poderrors "github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/logging"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// Default returns the embedded defaults without any project or environment
// overrides.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, poderrors.Wrap(err, poderrors.ErrConfigLoad, "failed to load defaults")
	}
	return unmarshal(k)
}

// UserConfigPath is the user-wide config file,
// $XDG_CONFIG_HOME/podkeeper/config.toml.
func UserConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, "podkeeper", UserConfigFile)
}

// Load resolves the configuration of the project rooted at projectRoot.
// The project's .podkeeper.toml is read through fsys, the same filesystem
// that holds its ledger and Podfile. The user config always comes from the
// OS filesystem.
func Load(fsys types.FS, projectRoot string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, poderrors.Wrap(err, poderrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config if it exists
	userConfig := UserConfigPath()
	if _, err := os.Stat(userConfig); err == nil {
		if err := k.Load(file.Provider(userConfig), toml.Parser()); err != nil {
			return nil, poderrors.Wrapf(err, poderrors.ErrConfigLoad, "failed to load user config from %s", userConfig)
		}
		logger.Debug().Str("path", userConfig).Msg("User config loaded")
	}

	// 3. Project config if it exists
	projectConfig := filepath.Join(projectRoot, ProjectConfigFile)
	data, err := fsys.ReadFile(projectConfig)
	switch {
	case err == nil:
		if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
			return nil, poderrors.Wrapf(err, poderrors.ErrConfigLoad, "failed to load project config from %s", projectConfig)
		}
		logger.Debug().Str("path", projectConfig).Msg("Project config loaded")
	case !errors.Is(err, fs.ErrNotExist):
		return nil, poderrors.Wrapf(err, poderrors.ErrConfigLoad, "failed to read %s", projectConfig)
	}

	// 4. Environment, PODKEEPER_MANIFEST_PLATFORM_VERSION -> manifest.platform_version
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, poderrors.Wrap(err, poderrors.ErrConfigLoad, "failed to load env vars")
	}

	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, poderrors.Wrap(err, poderrors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, poderrors.Wrap(err, poderrors.ErrConfigInvalid, "invalid configuration")
	}
	return &cfg, nil
}
