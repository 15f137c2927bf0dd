package reconcile

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/manifest"
	"github.com/arthur-debert/podkeeper/pkg/types"
	"github.com/arthur-debert/podkeeper/pkg/variables"
)

// unit is a validated spec with its resolved payload.
type unit struct {
	spec    types.DependencySpec
	payload types.Payload
}

func (u unit) id() types.Unit { return u.spec.Unit() }

// plan is everything decided before the ledger or Podfile is touched.
type plan struct {
	units      []unit
	skipped    []types.Unit
	unresolved []string
}

// prepare validates and resolves specs, orders them by kind and drops the
// libraries excluded from alternate packaging. It never mutates state.
func (e *Engine) prepare(pluginID string, specs []types.DependencySpec, opts types.InstallOptions) (*plan, error) {
	if pluginID == "" {
		return nil, errors.New(errors.ErrInvalidInput, "plugin id is required")
	}

	specs = lo.Map(specs, func(spec types.DependencySpec, _ int) types.DependencySpec {
		return normalizeSpec(spec)
	})
	for i, spec := range specs {
		if err := validateSpec(spec); err != nil {
			return nil, err.WithDetail("plugin", pluginID).WithDetail("index", i)
		}
	}

	resolver := variables.NewResolver(opts.Variables)
	units := make([]unit, 0, len(specs))
	for _, spec := range specs {
		units = append(units, unit{spec: spec, payload: resolvePayload(spec, resolver)})
	}

	missing := resolver.Missing()
	if len(missing) > 0 && e.cfg.Variables.Strict {
		return nil, errors.Newf(errors.ErrVariableUnbound, "plugin %s references unset variables: %v", pluginID, missing).
			WithDetail("plugin", pluginID).
			WithDetail("variables", missing)
	}

	for _, u := range units {
		if u.spec.Kind != types.KindLibrary {
			continue
		}
		if u.payload.Name == "" {
			return nil, errors.Newf(errors.ErrSpecInvalid, "library %s resolved to an empty pod name", u.spec.Key).
				WithDetail("plugin", pluginID)
		}
		if err := checkPodValues(u.payload.Pod()); err != nil {
			return nil, errors.Newf(errors.ErrSpecInvalid, "library %s: %v", u.spec.Key, err).
				WithDetail("plugin", pluginID).
				WithCause(err)
		}
		if err := u.payload.Pin.Validate(); err != nil {
			return nil, errors.Newf(errors.ErrSpecInvalid, "library %s: %v", u.spec.Key, err).
				WithDetail("plugin", pluginID).
				WithCause(err)
		}
	}

	units = lo.UniqBy(units, unit.id)

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].spec.Kind.Rank() < units[j].spec.Kind.Rank()
	})

	p := &plan{unresolved: missing}
	if opts.AlternatePackaging {
		excluded := func(u unit, _ int) bool {
			return u.spec.Library != nil && u.spec.Library.SkipInAlternatePackaging
		}
		p.skipped = lo.Map(lo.Filter(units, excluded), func(u unit, _ int) types.Unit { return u.id() })
		units = lo.Reject(units, excluded)
	}
	p.units = units
	return p, nil
}

// normalizeSpec trims the text of declarations and sources so that the value
// recorded in the ledger is the one read back from the Podfile.
func normalizeSpec(spec types.DependencySpec) types.DependencySpec {
	spec.Declaration = strings.TrimSpace(spec.Declaration)
	spec.Source = strings.TrimSpace(spec.Source)
	return spec
}

func validateSpec(spec types.DependencySpec) *errors.PodError {
	if !spec.Kind.Valid() {
		return errors.Newf(errors.ErrSpecInvalid, "unknown dependency kind %q", spec.Kind)
	}
	if spec.Key == "" {
		return errors.Newf(errors.ErrSpecInvalid, "%s without a key", spec.Kind)
	}
	switch spec.Kind {
	case types.KindDeclaration:
		if spec.Declaration == "" {
			return errors.Newf(errors.ErrSpecInvalid, "declaration %s has no text", spec.Key)
		}
		if err := manifest.CheckDeclaration(spec.Declaration); err != nil {
			return errors.Newf(errors.ErrSpecInvalid, "declaration %s: %v", spec.Key, err).WithCause(err)
		}
	case types.KindSource:
		if spec.Source == "" {
			return errors.Newf(errors.ErrSpecInvalid, "source %s has no url", spec.Key)
		}
		if err := manifest.CheckValue(spec.Source); err != nil {
			return errors.Newf(errors.ErrSpecInvalid, "source %s: %v", spec.Key, err).WithCause(err)
		}
	case types.KindLibrary:
		if spec.Library == nil || spec.Library.Name.IsZero() {
			return errors.Newf(errors.ErrSpecInvalid, "library %s has no name", spec.Key)
		}
	}
	return nil
}

func checkPodValues(pod types.Pod) error {
	for _, v := range []string{pod.Name, pod.Spec, pod.Git, pod.Tag, pod.Commit, pod.Branch} {
		if err := manifest.CheckValue(v); err != nil {
			return err
		}
	}
	return nil
}

func resolvePayload(spec types.DependencySpec, r *variables.Resolver) types.Payload {
	switch spec.Kind {
	case types.KindDeclaration:
		return types.Payload{Declaration: spec.Declaration}
	case types.KindSource:
		return types.Payload{Source: spec.Source}
	default:
		lib := spec.Library
		return types.PodPayload(types.Pod{
			Name: r.Resolve(lib.Name),
			Pin: types.Pin{
				Spec:   r.Resolve(lib.Spec),
				Git:    r.Resolve(lib.Git),
				Tag:    r.Resolve(lib.Tag),
				Commit: r.Resolve(lib.Commit),
				Branch: r.Resolve(lib.Branch),
			},
		})
	}
}
