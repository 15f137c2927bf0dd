// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/podkeeper/pkg/commands/status"
	"github.com/arthur-debert/podkeeper/pkg/errors"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderResult renders an add or remove result as JSON
func (r *Renderer) RenderResult(result *reconcile.Result) error {
	return r.encoder.Encode(result)
}

// RenderStatus renders the ledger entries as JSON
func (r *Renderer) RenderStatus(result *status.StatusResult) error {
	return r.encoder.Encode(map[string]interface{}{
		"project":  result.ProjectRoot,
		"ledger":   result.LedgerPath,
		"manifest": result.ManifestPath,
		"entries":  result.Entries,
	})
}

// RenderError renders an error as JSON, with its code and details when it
// carries them
func (r *Renderer) RenderError(err error) error {
	out := map[string]interface{}{"error": err.Error()}
	if code := errors.GetErrorCode(err); code != "" {
		out["code"] = code
		out["details"] = errors.GetErrorDetails(err)
	}
	return r.encoder.Encode(out)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
