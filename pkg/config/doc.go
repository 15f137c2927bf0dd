// Package config handles configuration management for podkeeper.
// Configuration is layered: embedded defaults, then the user's
// $XDG_CONFIG_HOME/podkeeper/config.toml, then the project's
// .podkeeper.toml, then PODKEEPER_* environment variables.
package config
