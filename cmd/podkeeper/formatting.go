package podkeeper

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// helpFuncs are the template funcs the usage template relies on. Bold is a
// no-op when help is piped.
func helpFuncs(styled bool) template.FuncMap {
	bold := func(s string) string { return s }
	if styled {
		bold = func(s string) string { return pterm.Bold.Sprint(s) }
	}
	return template.FuncMap{
		"bold":      bold,
		"upper":     strings.ToUpper,
		"boldUpper": func(s string) string { return bold(strings.ToUpper(s)) },
	}
}

func initTemplateFormatting() {
	fd := os.Stdout.Fd()
	cobra.AddTemplateFuncs(helpFuncs(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)))
}
