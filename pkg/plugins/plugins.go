package plugins

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/logging"
	"github.com/arthur-debert/podkeeper/pkg/types"
	"github.com/arthur-debert/podkeeper/pkg/variables"
)

// Declaration file names, in lookup order
const (
	TOMLFile = "pods.toml"
	YAMLFile = "pods.yaml"
)

// Format is the encoding of a declaration file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Plugin is a plugin's identity and its declared dependency units.
type Plugin struct {
	ID    string
	Dir   string
	Specs []types.DependencySpec
}

type rawDeclaration struct {
	ID           string       `toml:"id" yaml:"id"`
	Declarations []rawDecl    `toml:"declarations" yaml:"declarations"`
	Sources      []rawSource  `toml:"sources" yaml:"sources"`
	Libraries    []rawLibrary `toml:"libraries" yaml:"libraries"`
}

type rawDecl struct {
	Key  string `toml:"key" yaml:"key"`
	Text string `toml:"text" yaml:"text"`
}

type rawSource struct {
	Key string `toml:"key" yaml:"key"`
	URL string `toml:"url" yaml:"url"`
}

type rawLibrary struct {
	Key                      string `toml:"key" yaml:"key"`
	Name                     string `toml:"name" yaml:"name"`
	Spec                     string `toml:"spec" yaml:"spec"`
	Git                      string `toml:"git" yaml:"git"`
	Tag                      string `toml:"tag" yaml:"tag"`
	Commit                   string `toml:"commit" yaml:"commit"`
	Branch                   string `toml:"branch" yaml:"branch"`
	SkipInAlternatePackaging bool   `toml:"skip_in_alternate_packaging" yaml:"skip_in_alternate_packaging"`
}

// Load reads the declaration file of the plugin in dir. When the file
// carries no id, the directory name is used.
func Load(fsys types.FS, dir string) (*Plugin, error) {
	logger := logging.GetLogger("plugins").With().Str("dir", dir).Logger()

	path, format, err := FindDeclaration(fsys, dir)
	if err != nil {
		return nil, err
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPluginDeclParse, "failed to read %s", path)
	}

	p, err := Parse(data, format)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrSpecInvalid) {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrPluginDeclParse, "failed to parse %s", path)
	}
	p.Dir = dir
	if p.ID == "" {
		p.ID = filepath.Base(filepath.Clean(dir))
	}

	logger.Debug().
		Str("plugin", p.ID).
		Int("specs", len(p.Specs)).
		Msg("Plugin declaration loaded")
	return p, nil
}

// FindDeclaration returns the declaration file of the plugin in dir.
func FindDeclaration(fsys types.FS, dir string) (string, Format, error) {
	info, err := fsys.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", "", errors.Newf(errors.ErrPluginNotFound, "plugin directory %s does not exist", dir)
	}
	for _, candidate := range []struct {
		name   string
		format Format
	}{{TOMLFile, FormatTOML}, {YAMLFile, FormatYAML}} {
		path := filepath.Join(dir, candidate.name)
		if _, err := fsys.Stat(path); err == nil {
			return path, candidate.format, nil
		}
	}
	return "", "", errors.Newf(errors.ErrPluginNotFound, "no %s or %s in %s", TOMLFile, YAMLFile, dir)
}

// Parse decodes a declaration. Declared order is preserved within each kind.
func Parse(data []byte, format Format) (*Plugin, error) {
	var raw rawDeclaration
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown declaration format %q", format)
	}

	p := &Plugin{ID: raw.ID}
	for i, d := range raw.Declarations {
		d.Text = strings.TrimSpace(d.Text)
		if d.Key == "" || d.Text == "" {
			return nil, errors.Newf(errors.ErrSpecInvalid, "declaration #%d needs a key and text", i+1)
		}
		p.Specs = append(p.Specs, types.DependencySpec{
			Kind:        types.KindDeclaration,
			Key:         d.Key,
			Declaration: d.Text,
		})
	}
	for i, s := range raw.Sources {
		s.URL = strings.TrimSpace(s.URL)
		if s.Key == "" || s.URL == "" {
			return nil, errors.Newf(errors.ErrSpecInvalid, "source #%d needs a key and url", i+1)
		}
		p.Specs = append(p.Specs, types.DependencySpec{
			Kind:   types.KindSource,
			Key:    s.Key,
			Source: s.URL,
		})
	}
	for i, l := range raw.Libraries {
		if l.Name == "" {
			return nil, errors.Newf(errors.ErrSpecInvalid, "library #%d has no name", i+1).
				WithDetail("key", l.Key)
		}
		key := l.Key
		if key == "" {
			key = l.Name
		}
		p.Specs = append(p.Specs, types.DependencySpec{
			Kind: types.KindLibrary,
			Key:  key,
			Library: &types.LibrarySpec{
				Name:                     variables.Parse(l.Name),
				Spec:                     variables.Parse(l.Spec),
				Git:                      variables.Parse(l.Git),
				Tag:                      variables.Parse(l.Tag),
				Commit:                   variables.Parse(l.Commit),
				Branch:                   variables.Parse(l.Branch),
				SkipInAlternatePackaging: l.SkipInAlternatePackaging,
			},
		})
	}
	return p, nil
}
