package reconcile

import (
	"github.com/arthur-debert/podkeeper/pkg/ledger"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// StatusEntry is a ledger entry together with whether the Podfile
// currently carries it.
type StatusEntry struct {
	ledger.Entry
	InManifest bool `json:"in_manifest"`
}

// Status reports every ledger entry in kind order, keys sorted. Nothing is
// written.
func (e *Engine) Status() ([]StatusEntry, error) {
	led, podfile, err := e.load()
	if err != nil {
		return nil, err
	}

	s := &session{ledger: led, podfile: podfile}
	entries := led.Entries()
	status := make([]StatusEntry, 0, len(entries))
	for _, entry := range entries {
		status = append(status, StatusEntry{
			Entry:      entry,
			InManifest: s.present(entry.Kind, entry.Payload) && s.matches(entry),
		})
	}
	return status, nil
}

// matches reports whether the Podfile pod carries the registered pin. Other
// kinds match on presence alone.
func (s *session) matches(entry ledger.Entry) bool {
	if entry.Kind != types.KindLibrary {
		return true
	}
	pod, ok := s.podfile.Pod(entry.Payload.Name)
	return ok && pod.Pin == entry.Payload.Pin
}
