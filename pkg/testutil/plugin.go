package testutil

import (
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
)

// PluginBuilder writes a plugin directory with a pods.toml declaration.
type PluginBuilder struct {
	t    *testing.T
	dir  string
	decl pluginFile
}

type pluginFile struct {
	ID           string          `toml:"id,omitempty"`
	Declarations []PluginDecl    `toml:"declarations,omitempty"`
	Sources      []PluginSource  `toml:"sources,omitempty"`
	Libraries    []PluginLibrary `toml:"libraries,omitempty"`
}

// PluginDecl is a declaration entry of pods.toml.
type PluginDecl struct {
	Key  string `toml:"key"`
	Text string `toml:"text"`
}

// PluginSource is a source entry of pods.toml.
type PluginSource struct {
	Key string `toml:"key"`
	URL string `toml:"url"`
}

// PluginLibrary is a library entry of pods.toml.
type PluginLibrary struct {
	Key                      string `toml:"key,omitempty"`
	Name                     string `toml:"name"`
	Spec                     string `toml:"spec,omitempty"`
	Git                      string `toml:"git,omitempty"`
	Tag                      string `toml:"tag,omitempty"`
	Commit                   string `toml:"commit,omitempty"`
	Branch                   string `toml:"branch,omitempty"`
	SkipInAlternatePackaging bool   `toml:"skip_in_alternate_packaging,omitempty"`
}

// NewPlugin starts a plugin called id under parent.
func NewPlugin(t *testing.T, parent, id string) *PluginBuilder {
	t.Helper()
	return &PluginBuilder{
		t:    t,
		dir:  filepath.Join(parent, id),
		decl: pluginFile{ID: id},
	}
}

// Declaration adds a Podfile declaration.
func (b *PluginBuilder) Declaration(key, text string) *PluginBuilder {
	b.decl.Declarations = append(b.decl.Declarations, PluginDecl{Key: key, Text: text})
	return b
}

// Source adds a spec source.
func (b *PluginBuilder) Source(key, url string) *PluginBuilder {
	b.decl.Sources = append(b.decl.Sources, PluginSource{Key: key, URL: url})
	return b
}

// Pod adds a library keyed by its name.
func (b *PluginBuilder) Pod(name, spec string) *PluginBuilder {
	return b.Library(PluginLibrary{Key: name, Name: name, Spec: spec})
}

// Library adds a fully specified library.
func (b *PluginBuilder) Library(lib PluginLibrary) *PluginBuilder {
	b.decl.Libraries = append(b.decl.Libraries, lib)
	return b
}

// Build writes pods.toml and returns the plugin directory.
func (b *PluginBuilder) Build() string {
	b.t.Helper()
	data, err := toml.Marshal(b.decl)
	if err != nil {
		b.t.Fatalf("Failed to encode plugin %s: %v", b.decl.ID, err)
	}
	CreateFile(b.t, b.dir, "pods.toml", string(data))
	return b.dir
}
