// Package terminal renders styled output for interactive terminals.
package terminal

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/podkeeper/pkg/commands/status"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/ui/styles"
	"github.com/arthur-debert/podkeeper/pkg/ui/text"
)

// Renderer provides rich terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders an add or remove result with styled lines
func (r *Renderer) RenderResult(result *reconcile.Result) error {
	for _, line := range text.ResultLines(result) {
		if _, err := fmt.Fprintln(r.output, styles.Render(line.Style, line.Text)); err != nil {
			return err
		}
	}
	return nil
}

// RenderStatus renders the ledger as a table
func (r *Renderer) RenderStatus(result *status.StatusResult) error {
	if len(result.Entries) == 0 {
		return r.RenderMessage(styles.Render(styles.Muted, "No dependencies registered in "+result.LedgerPath))
	}

	rows := text.StatusRows(result.Entries)
	for i, e := range result.Entries {
		rows[i][4] = StatusStyle(e.InManifest).Sprint(rows[i][4])
	}

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(append([][]string{text.StatusHeader}, rows...)).
		Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}

// StatusStyle returns the pterm style for a Podfile presence flag
func StatusStyle(inPodfile bool) *pterm.Style {
	if inPodfile {
		return pterm.NewStyle(pterm.FgGreen)
	}
	return pterm.NewStyle(pterm.FgRed, pterm.Bold)
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.Render(styles.Error, fmt.Sprintf("Error: %v", err)))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
