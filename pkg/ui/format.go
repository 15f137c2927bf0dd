package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects a renderer
type Format int

const (
	// FormatAuto resolves to FormatTerminal or FormatText per destination
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
)

// formatNames holds the accepted spellings of each format, canonical first.
var formatNames = map[Format][]string{
	FormatAuto:     {"auto", ""},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
	FormatJSON:     {"json"},
}

func (f Format) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return "unknown"
}

// ParseFormat accepts any spelling in formatNames, case-insensitively.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, names := range formatNames {
		for _, name := range names {
			if s == name {
				return f, nil
			}
		}
	}
	return FormatAuto, fmt.Errorf("unknown format: %s", s)
}

// DetectFormat chooses between terminal and text output for w. NO_COLOR,
// non-file writers, pipes and colorless terminals all get plain text.
func DetectFormat(w io.Writer) Format {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return FormatText
	}
	file, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	if fd := file.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(file).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
