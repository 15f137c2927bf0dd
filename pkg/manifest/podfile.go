package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"

	poderrors "github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// Header is the first line of every generated Podfile.
const Header = "# DO NOT MODIFY -- auto-generated by podkeeper"

// Options are the boilerplate values of a generated Podfile.
type Options struct {
	TargetName      string
	ProjectName     string
	Platform        string
	PlatformVersion string
}

// Podfile is the in-memory Podfile of a project.
type Podfile struct {
	fs   types.FS
	path string
	opts Options

	declarations []string
	sources      []string
	pods         []types.Pod

	snapshot uint64
}

// Load parses the Podfile at path. A missing file yields an empty, clean
// Podfile. An existing file is clean only while Bytes reproduces it exactly,
// so a changed platform or target name marks it dirty.
func Load(fsys types.FS, path string, opts Options) (*Podfile, error) {
	p := &Podfile{fs: fsys, path: path, opts: opts}

	data, err := fsys.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		p.snapshot = p.fingerprint()
	case err != nil:
		return nil, poderrors.Wrapf(err, poderrors.ErrManifestRead, "failed to read %s", path)
	default:
		parsed, err := Parse(data)
		if err != nil {
			return nil, poderrors.Wrapf(err, poderrors.ErrManifestRead, "failed to parse %s", path)
		}
		p.declarations = parsed.Declarations
		p.sources = parsed.Sources
		p.pods = parsed.Pods
		p.snapshot = xxhash.Sum64(data)
	}

	return p, nil
}

// Path returns where the Podfile is persisted.
func (p *Podfile) Path() string { return p.path }

// Declarations returns the declarations in file order.
func (p *Podfile) Declarations() []string { return append([]string(nil), p.declarations...) }

// Sources returns the source URLs in file order.
func (p *Podfile) Sources() []string { return append([]string(nil), p.sources...) }

// Pods returns the pods in file order.
func (p *Podfile) Pods() []types.Pod { return append([]types.Pod(nil), p.pods...) }

// AddDeclaration appends text unless it is already declared.
func (p *Podfile) AddDeclaration(text string) {
	if lo.IndexOf(p.declarations, text) < 0 {
		p.declarations = append(p.declarations, text)
	}
}

// RemoveDeclaration removes text if present.
func (p *Podfile) RemoveDeclaration(text string) {
	p.declarations = lo.Without(p.declarations, text)
}

// HasDeclaration reports whether text is declared.
func (p *Podfile) HasDeclaration(text string) bool {
	return lo.IndexOf(p.declarations, text) >= 0
}

// AddSource appends url unless it is already listed.
func (p *Podfile) AddSource(url string) {
	if lo.IndexOf(p.sources, url) < 0 {
		p.sources = append(p.sources, url)
	}
}

// RemoveSource removes url if present.
func (p *Podfile) RemoveSource(url string) {
	p.sources = lo.Without(p.sources, url)
}

// HasSource reports whether url is listed.
func (p *Podfile) HasSource(url string) bool {
	return lo.IndexOf(p.sources, url) >= 0
}

// AddPod appends pod, or replaces the pin of a pod with the same name in
// place.
func (p *Podfile) AddPod(pod types.Pod) {
	if i := p.podIndex(pod.Name); i >= 0 {
		p.pods[i] = pod
		return
	}
	p.pods = append(p.pods, pod)
}

// RemovePod removes the pod called name if present.
func (p *Podfile) RemovePod(name string) {
	if i := p.podIndex(name); i >= 0 {
		p.pods = append(p.pods[:i:i], p.pods[i+1:]...)
	}
}

// Pod returns the pod called name.
func (p *Podfile) Pod(name string) (types.Pod, bool) {
	if i := p.podIndex(name); i >= 0 {
		return p.pods[i], true
	}
	return types.Pod{}, false
}

func (p *Podfile) podIndex(name string) int {
	_, i, _ := lo.FindIndexOf(p.pods, func(pod types.Pod) bool { return pod.Name == name })
	return i
}

// Bytes returns the serialized Podfile.
func (p *Podfile) Bytes() []byte {
	var b bytes.Buffer

	b.WriteString(Header)
	b.WriteByte('\n')
	for _, src := range p.sources {
		fmt.Fprintf(&b, "source %s\n", quote(src))
	}
	if p.opts.Platform != "" {
		fmt.Fprintf(&b, "platform :%s, %s\n", p.opts.Platform, quote(p.opts.PlatformVersion))
	}
	for _, decl := range p.declarations {
		b.WriteString(decl)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "target %s do\n", quote(p.opts.TargetName))
	if p.opts.ProjectName != "" {
		fmt.Fprintf(&b, "\tproject %s\n", quote(p.opts.ProjectName))
	}
	for _, pod := range p.pods {
		b.WriteByte('\t')
		b.WriteString(FormatPod(pod))
		b.WriteByte('\n')
	}
	b.WriteString("end\n")

	return b.Bytes()
}

// FormatPod renders the pod statement for pod.
func FormatPod(pod types.Pod) string {
	line := "pod " + quote(pod.Name)
	switch {
	case pod.Spec != "":
		line += ", " + quote(pod.Spec)
	case pod.Git != "":
		line += ", :git => " + quote(pod.Git)
		switch {
		case pod.Tag != "":
			line += ", :tag => " + quote(pod.Tag)
		case pod.Commit != "":
			line += ", :commit => " + quote(pod.Commit)
		case pod.Branch != "":
			line += ", :branch => " + quote(pod.Branch)
		}
	}
	return line
}

func (p *Podfile) fingerprint() uint64 {
	return xxhash.Sum64(p.Bytes())
}

// IsDirty reports whether the serialized Podfile differs from what was last
// loaded or written.
func (p *Podfile) IsDirty() bool {
	return p.fingerprint() != p.snapshot
}

// Write persists the Podfile and marks it clean.
func (p *Podfile) Write() error {
	data := p.Bytes()

	if err := p.fs.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return poderrors.Wrapf(err, poderrors.ErrManifestWrite, "failed to create directory for %s", p.path)
	}

	tmp := p.path + ".tmp"
	if err := p.fs.WriteFile(tmp, data, 0644); err != nil {
		return poderrors.Wrapf(err, poderrors.ErrManifestWrite, "failed to write %s", tmp)
	}
	if err := p.fs.Rename(tmp, p.path); err != nil {
		_ = p.fs.Remove(tmp)
		return poderrors.Wrapf(err, poderrors.ErrManifestWrite, "failed to replace %s", p.path)
	}

	p.snapshot = xxhash.Sum64(data)
	return nil
}
