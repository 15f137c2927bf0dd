// Package plugins reads the dependency declaration a plugin ships with.
//
// A plugin directory carries pods.toml (or pods.yaml) listing the
// declarations, sources and libraries it needs. Library fields other than
// the key may be "$NAME" references resolved at install time.
package plugins
