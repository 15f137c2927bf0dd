// Package text renders plain, unstyled output. Its line model is shared
// with the terminal renderer, which only adds styling.
package text

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/arthur-debert/podkeeper/pkg/commands/status"
	"github.com/arthur-debert/podkeeper/pkg/ledger"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/types"
	"github.com/arthur-debert/podkeeper/pkg/ui/styles"
)

// Line is one output line and the semantic style it should carry.
type Line struct {
	Style string
	Text  string
}

// ResultLines describes an add or remove result line by line.
func ResultLines(r *reconcile.Result) []Line {
	lines := []Line{{styles.Header, fmt.Sprintf("%s %s", r.Operation, r.Plugin)}}

	units := func(style, marker, suffix string, list []types.Unit) {
		for _, u := range list {
			lines = append(lines, Line{style, fmt.Sprintf("  %s %s%s", marker, u, suffix)})
		}
	}
	units(styles.Success, "+", "", r.Added)
	units(styles.Muted, "=", "", r.Retained)
	units(styles.Info, "~", " (restored in Podfile)", r.Restored)
	units(styles.Removed, "-", "", r.Removed)
	units(styles.Warning, "?", " (not in ledger)", r.Missing)
	units(styles.Muted, ".", " (skipped for alternate packaging)", r.Skipped)

	for _, c := range r.Conflicts {
		lines = append(lines, Line{styles.Warning, fmt.Sprintf("  ! %s: keeping %s, %s wanted %s",
			c.Key, c.Registered.Pin, c.Plugin, c.Requested.Pin)})
	}
	for _, name := range r.Unresolved {
		lines = append(lines, Line{styles.Warning, fmt.Sprintf("  ! variable %s not set, used an empty value", name)})
	}

	switch {
	case r.InstallerRan:
		lines = append(lines, Line{styles.Success, "Podfile updated, pod install completed"})
	case r.ManifestChanged:
		lines = append(lines, Line{styles.Warning, "Podfile updated, pod install did not complete"})
	default:
		lines = append(lines, Line{styles.Muted, "Podfile unchanged"})
	}
	return lines
}

// StatusHeader is the column header of the status table.
var StatusHeader = []string{"KIND", "KEY", "VALUE", "COUNT", "PODFILE"}

// StatusRows returns one table row per ledger entry.
func StatusRows(entries []reconcile.StatusEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		inPodfile := "yes"
		if !e.InManifest {
			inPodfile = "missing"
		}
		rows = append(rows, []string{
			string(e.Kind),
			e.Key,
			EntryValue(e.Entry),
			strconv.Itoa(e.Count),
			inPodfile,
		})
	}
	return rows
}

// EntryValue is the Podfile-facing value of an entry.
func EntryValue(e ledger.Entry) string {
	switch e.Kind {
	case types.KindDeclaration:
		return e.Payload.Declaration
	case types.KindSource:
		return e.Payload.Source
	default:
		return e.Payload.Pod().String()
	}
}

// Renderer provides plain text output
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders an add or remove result
func (r *Renderer) RenderResult(result *reconcile.Result) error {
	for _, line := range ResultLines(result) {
		if _, err := fmt.Fprintln(r.output, line.Text); err != nil {
			return err
		}
	}
	return nil
}

// RenderStatus renders the ledger as aligned columns
func (r *Renderer) RenderStatus(result *status.StatusResult) error {
	if len(result.Entries) == 0 {
		return r.RenderMessage("No dependencies registered in " + result.LedgerPath)
	}
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	for _, row := range append([][]string{StatusHeader}, StatusRows(result.Entries)...) {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// RenderError renders an error
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
