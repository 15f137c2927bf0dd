// Package status reports the reference counts recorded for a project and
// whether the Podfile carries each entry.
package status

import (
	"github.com/samber/lo"

	"github.com/arthur-debert/podkeeper/pkg/commands/internal"
	"github.com/arthur-debert/podkeeper/pkg/logging"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// StatusOptions contains options for the status command
type StatusOptions struct {
	ProjectRoot string
	// FS to use (defaults to OS filesystem)
	FS types.FS
}

// StatusResult is the ledger of one project.
type StatusResult struct {
	ProjectRoot  string
	LedgerPath   string
	ManifestPath string
	Entries      []reconcile.StatusEntry
}

// Drifted returns the entries missing from the Podfile or carrying another
// pin there.
func (r *StatusResult) Drifted() []reconcile.StatusEntry {
	return lo.Filter(r.Entries, func(entry reconcile.StatusEntry, _ int) bool {
		return !entry.InManifest
	})
}

// Status reads the project's ledger and Podfile. Nothing is written.
func Status(opts StatusOptions) (*StatusResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Status").Msg("Executing command")

	env, err := internal.NewEnvironment(internal.EnvironmentOptions{
		ProjectRoot: opts.ProjectRoot,
		FS:          opts.FS,
	})
	if err != nil {
		return nil, err
	}

	entries, err := env.Engine.Status()
	if err != nil {
		return nil, err
	}

	return &StatusResult{
		ProjectRoot:  env.Paths.ProjectRoot(),
		LedgerPath:   env.Paths.LedgerPath(),
		ManifestPath: env.Paths.ManifestPath(),
		Entries:      entries,
	}, nil
}
