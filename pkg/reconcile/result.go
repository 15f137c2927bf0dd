package reconcile

import (
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// Operation names the direction of a reconciliation
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
)

// Conflict records a library requested with a pin other than the one
// already registered. The registered pin is kept.
type Conflict struct {
	Plugin     string    `json:"plugin"`
	Key        string    `json:"key"`
	Registered types.Pod `json:"registered"`
	Requested  types.Pod `json:"requested"`
}

// Result describes what one add or remove call did.
type Result struct {
	Plugin    string    `json:"plugin"`
	Operation Operation `json:"operation"`

	// Added units were new to the ledger and written to the Podfile.
	Added []types.Unit `json:"added,omitempty"`
	// Retained units changed count but stayed in the Podfile.
	Retained []types.Unit `json:"retained,omitempty"`
	// Removed units reached a count of zero and left the ledger.
	Removed []types.Unit `json:"removed,omitempty"`
	// Restored units were in the ledger but missing from the Podfile and
	// were written back.
	Restored []types.Unit `json:"restored,omitempty"`
	// Missing units were removed but had no ledger entry.
	Missing []types.Unit `json:"missing,omitempty"`
	// Skipped units were ignored for alternate packaging.
	Skipped []types.Unit `json:"skipped,omitempty"`

	Conflicts []Conflict `json:"conflicts,omitempty"`
	// Unresolved lists variable names that resolved to an empty string.
	Unresolved []string `json:"unresolved,omitempty"`

	ManifestChanged bool `json:"manifest_changed"`
	InstallerRan    bool `json:"installer_ran"`
}
