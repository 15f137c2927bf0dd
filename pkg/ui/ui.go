// Package ui renders podkeeper command results as styled terminal output,
// plain text or JSON.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/podkeeper/pkg/commands/status"
	"github.com/arthur-debert/podkeeper/pkg/reconcile"
	"github.com/arthur-debert/podkeeper/pkg/ui/json"
	"github.com/arthur-debert/podkeeper/pkg/ui/terminal"
	"github.com/arthur-debert/podkeeper/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders the outcome of an add or remove
	RenderResult(result *reconcile.Result) error
	// RenderStatus renders a project's ledger
	RenderStatus(result *status.StatusResult) error
	// RenderError renders an error with appropriate formatting
	RenderError(err error) error
	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format writing to output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(output), output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
