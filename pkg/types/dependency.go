package types

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/podkeeper/pkg/variables"
)

// Kind identifies one of the three dependency unit families a plugin can
// declare.
type Kind string

const (
	KindDeclaration Kind = "declaration"
	KindSource      Kind = "source"
	KindLibrary     Kind = "library"
)

// Kinds lists every kind in processing order: declarations and sources are
// syntactic prerequisites for pods in the Podfile.
var Kinds = []Kind{KindDeclaration, KindSource, KindLibrary}

// Rank returns the processing position of k.
func (k Kind) Rank() int {
	for i, kind := range Kinds {
		if kind == k {
			return i
		}
	}
	return len(Kinds)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k.Rank() < len(Kinds)
}

// DependencySpec is one dependency unit requested by a plugin.
type DependencySpec struct {
	Kind Kind
	// Key is the stable identity of the unit. It is never resolved.
	Key string

	// Declaration is the Podfile statement for KindDeclaration (e.g.
	// "use_frameworks!").
	Declaration string
	// Source is the spec repository URL for KindSource.
	Source string
	// Library is the pod request for KindLibrary.
	Library *LibrarySpec
}

// LibrarySpec is the unresolved pod request of a library unit.
type LibrarySpec struct {
	Name   variables.Value
	Spec   variables.Value
	Git    variables.Value
	Tag    variables.Value
	Commit variables.Value
	Branch variables.Value

	// SkipInAlternatePackaging keeps the pod out of the Podfile when the
	// plugin is installed for the alternate packaging path.
	SkipInAlternatePackaging bool
}

// Unit is the (kind, key) identity of a dependency unit.
type Unit struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

func (u Unit) String() string {
	return fmt.Sprintf("%s:%s", u.Kind, u.Key)
}

// Unit returns the identity of s.
func (s DependencySpec) Unit() Unit {
	return Unit{Kind: s.Kind, Key: s.Key}
}

// Pin is a resolved pod version requirement. At most one of Spec or Git is
// set; Tag, Commit and Branch qualify Git.
type Pin struct {
	Spec   string `json:"spec,omitempty"`
	Git    string `json:"git,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// IsZero reports whether the pin places no requirement on the pod.
func (p Pin) IsZero() bool {
	return p == Pin{}
}

// Validate checks the pin is expressible in a Podfile.
func (p Pin) Validate() error {
	if p.Spec != "" && p.Git != "" {
		return fmt.Errorf("spec %q and git %q are mutually exclusive", p.Spec, p.Git)
	}
	refs := 0
	for _, ref := range []string{p.Tag, p.Commit, p.Branch} {
		if ref != "" {
			refs++
		}
	}
	if refs > 1 {
		return fmt.Errorf("only one of tag, commit or branch may be set")
	}
	if refs == 1 && p.Git == "" {
		return fmt.Errorf("tag, commit and branch require git")
	}
	return nil
}

func (p Pin) String() string {
	var parts []string
	if p.Spec != "" {
		parts = append(parts, p.Spec)
	}
	if p.Git != "" {
		parts = append(parts, "git="+p.Git)
	}
	if p.Tag != "" {
		parts = append(parts, "tag="+p.Tag)
	}
	if p.Commit != "" {
		parts = append(parts, "commit="+p.Commit)
	}
	if p.Branch != "" {
		parts = append(parts, "branch="+p.Branch)
	}
	if len(parts) == 0 {
		return "(any)"
	}
	return strings.Join(parts, " ")
}

// Pod is a resolved library: the pod name and its pin.
type Pod struct {
	Name string `json:"name"`
	Pin
}

func (p Pod) String() string {
	return fmt.Sprintf("%s %s", p.Name, p.Pin)
}

// Payload is what the ledger records for a unit. Only the field matching
// the unit kind is set.
type Payload struct {
	Declaration string `json:"declaration,omitempty"`
	Source      string `json:"source,omitempty"`
	Name        string `json:"name,omitempty"`
	Pin
}

// Pod returns the library view of a payload.
func (p Payload) Pod() Pod {
	return Pod{Name: p.Name, Pin: p.Pin}
}

// PodPayload builds the ledger payload of a resolved library.
func PodPayload(pod Pod) Payload {
	return Payload{Name: pod.Name, Pin: pod.Pin}
}
