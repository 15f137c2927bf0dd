package reconcile

import (
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/arthur-debert/podkeeper/pkg/ledger"
	"github.com/arthur-debert/podkeeper/pkg/manifest"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// session applies one plugin's units to a loaded ledger and Podfile.
type session struct {
	logger  zerolog.Logger
	ledger  *ledger.Ledger
	podfile *manifest.Podfile
	result  *Result
}

func (s *session) add(u unit) {
	kind, key := u.spec.Kind, u.spec.Key
	table := s.ledger.Table(kind)
	logger := s.logger.With().Stringer("unit", u.id()).Logger()

	entry, found := table.Get(key)
	if !found {
		table.SetEntry(key, u.payload)
		s.result.Added = append(s.result.Added, u.id())
		logger.Debug().Msg("Registered new dependency")

		if kind == types.KindLibrary {
			if owners := s.referencing(kind, u.payload, key); len(owners) > 0 {
				if registered := owners[0].Payload.Pod(); registered != u.payload.Pod() {
					s.conflict(logger, key, registered, u.payload.Pod())
				}
				if !s.present(kind, owners[0].Payload) {
					s.write(kind, owners[0].Payload)
				}
				return
			}
		}
		s.write(kind, u.payload)
		return
	}

	// Found entries are never absent from the table, so this cannot fail.
	_ = table.Increment(key)
	s.result.Retained = append(s.result.Retained, u.id())
	logger.Debug().Int("count", entry.Count+1).Msg("Dependency already registered")

	if kind == types.KindLibrary && entry.Payload.Pod() != u.payload.Pod() {
		s.conflict(logger, key, entry.Payload.Pod(), u.payload.Pod())
	}

	if !s.present(kind, entry.Payload) {
		logger.Warn().Msg("Registered dependency missing from the Podfile, restoring it")
		s.write(kind, entry.Payload)
		s.result.Restored = append(s.result.Restored, u.id())
	}
}

func (s *session) remove(u unit) {
	kind, key := u.spec.Kind, u.spec.Key
	table := s.ledger.Table(kind)
	logger := s.logger.With().Stringer("unit", u.id()).Logger()

	entry, found := table.Get(key)
	if !found {
		logger.Warn().Msg("Dependency has no ledger entry, removing it from the Podfile anyway")
		s.result.Missing = append(s.result.Missing, u.id())
		if len(s.referencing(kind, u.payload, key)) == 0 {
			s.erase(kind, u.payload)
		}
		return
	}

	remaining, _ := table.Decrement(key)
	if remaining > 0 {
		s.result.Retained = append(s.result.Retained, u.id())
		logger.Debug().Int("count", remaining).Msg("Dependency still referenced")
		return
	}

	s.result.Removed = append(s.result.Removed, u.id())
	logger.Debug().Msg("Dependency no longer referenced")

	owners := s.referencing(kind, entry.Payload, key)
	if len(owners) == 0 {
		s.erase(kind, entry.Payload)
		return
	}
	// Another key still needs the same Podfile line; hand it over.
	if kind == types.KindLibrary {
		s.podfile.AddPod(owners[0].Payload.Pod())
	}
}

func (s *session) conflict(logger zerolog.Logger, key string, registered, requested types.Pod) {
	logger.Warn().
		Str("registered", registered.String()).
		Str("requested", requested.String()).
		Msg("Conflicting pod requirement, keeping the registered one")
	s.result.Conflicts = append(s.result.Conflicts, Conflict{
		Plugin:     s.result.Plugin,
		Key:        key,
		Registered: registered,
		Requested:  requested,
	})
}

// referencing returns the other ledger entries of kind that map to the same
// Podfile line as payload.
func (s *session) referencing(kind types.Kind, payload types.Payload, exceptKey string) []ledger.Entry {
	table := s.ledger.Table(kind)
	target := line(kind, payload)
	return lo.FilterMap(table.Keys(), func(key string, _ int) (ledger.Entry, bool) {
		if key == exceptKey {
			return ledger.Entry{}, false
		}
		entry, _ := table.Get(key)
		return entry, line(kind, entry.Payload) == target
	})
}

func (s *session) present(kind types.Kind, payload types.Payload) bool {
	switch kind {
	case types.KindDeclaration:
		return s.podfile.HasDeclaration(payload.Declaration)
	case types.KindSource:
		return s.podfile.HasSource(payload.Source)
	default:
		_, ok := s.podfile.Pod(payload.Name)
		return ok
	}
}

func (s *session) write(kind types.Kind, payload types.Payload) {
	switch kind {
	case types.KindDeclaration:
		s.podfile.AddDeclaration(payload.Declaration)
	case types.KindSource:
		s.podfile.AddSource(payload.Source)
	default:
		s.podfile.AddPod(payload.Pod())
	}
}

func (s *session) erase(kind types.Kind, payload types.Payload) {
	switch kind {
	case types.KindDeclaration:
		s.podfile.RemoveDeclaration(payload.Declaration)
	case types.KindSource:
		s.podfile.RemoveSource(payload.Source)
	default:
		s.podfile.RemovePod(payload.Name)
	}
}

// line is the Podfile identity of a payload: the declaration text, the
// source url or the pod name.
func line(kind types.Kind, payload types.Payload) string {
	switch kind {
	case types.KindDeclaration:
		return payload.Declaration
	case types.KindSource:
		return payload.Source
	default:
		return payload.Name
	}
}
