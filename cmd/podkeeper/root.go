// Package podkeeper is the podkeeper command line.
package podkeeper

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/podkeeper/internal/version"
	"github.com/arthur-debert/podkeeper/pkg/installer"
	"github.com/arthur-debert/podkeeper/pkg/logging"
	"github.com/arthur-debert/podkeeper/pkg/ui"
)

// Dependencies overrides the external installer collaborators. Zero values
// run the configured pod tool.
type Dependencies struct {
	Installer installer.Installer
	ToolCheck installer.ToolCheck
}

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity int
	project   string
	output    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(Dependencies{})
}

func newRootCmd(deps Dependencies) *cobra.Command {
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "podkeeper",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&flags.project, "project", "p", "", MsgFlagProject)
	rootCmd.PersistentFlags().StringVarP(&flags.output, "output", "o", ui.FormatAuto.String(), MsgFlagOutput)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newAddCmd(flags, deps))
	rootCmd.AddCommand(newRemoveCmd(flags, deps))
	rootCmd.AddCommand(newInstallCmd(flags, deps))
	rootCmd.AddCommand(newStatusCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// renderer builds the output renderer selected by --output
func (f *globalFlags) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(f.output)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}
