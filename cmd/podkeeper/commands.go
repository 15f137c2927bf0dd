package podkeeper

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/podkeeper/internal/version"
	"github.com/arthur-debert/podkeeper/pkg/commands/add"
	"github.com/arthur-debert/podkeeper/pkg/commands/install"
	"github.com/arthur-debert/podkeeper/pkg/commands/remove"
	"github.com/arthur-debert/podkeeper/pkg/commands/status"
	"github.com/arthur-debert/podkeeper/pkg/config"
	"github.com/arthur-debert/podkeeper/pkg/paths"
	"github.com/arthur-debert/podkeeper/pkg/types"
)

// projectRoot returns --project, or the discovered project root with a
// warning when discovery fell back to the working directory.
func (f *globalFlags) projectRoot(cmd *cobra.Command) (string, error) {
	if f.project != "" {
		return f.project, nil
	}
	root, usedFallback, err := paths.FindProjectRoot()
	if err != nil {
		return "", fmt.Errorf(MsgErrFindProject, err)
	}
	if usedFallback {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, root)
	}
	return root, nil
}

// pluginFlags are the per-call install options of add and remove
type pluginFlags struct {
	vars               map[string]string
	link               bool
	alternatePackaging bool
}

func (p *pluginFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringToStringVar(&p.vars, "var", nil, MsgFlagVar)
	cmd.Flags().BoolVar(&p.link, "link", false, MsgFlagLink)
	cmd.Flags().BoolVar(&p.alternatePackaging, "alternate-packaging", false, MsgFlagAlternatePackaging)
}

func (p *pluginFlags) installOptions() types.InstallOptions {
	return types.InstallOptions{
		Variables:          p.vars,
		Link:               p.link,
		AlternatePackaging: p.alternatePackaging,
	}
}

func pluginDirCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func newAddCmd(flags *globalFlags, deps Dependencies) *cobra.Command {
	plugin := &pluginFlags{}
	cmd := &cobra.Command{
		Use:               "add <plugin-dir>",
		Short:             MsgAddShort,
		Long:              MsgAddLong,
		Example:           MsgAddExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: pluginDirCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := flags.projectRoot(cmd)
			if err != nil {
				return err
			}
			renderer, err := flags.renderer(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("project", root).
				Str("plugin_dir", args[0]).
				Bool("link", plugin.link).
				Msg("Adding plugin dependencies")

			result, err := add.AddDependencies(cmd.Context(), add.AddOptions{
				ProjectRoot: root,
				PluginDir:   args[0],
				Install:     plugin.installOptions(),
				Installer:   deps.Installer,
				ToolCheck:   deps.ToolCheck,
			})
			if result != nil {
				if rerr := renderer.RenderResult(result); rerr != nil {
					return rerr
				}
			}
			if err != nil {
				return fmt.Errorf(MsgErrAdd, err)
			}
			return nil
		},
	}
	plugin.register(cmd)
	return cmd
}

func newRemoveCmd(flags *globalFlags, deps Dependencies) *cobra.Command {
	plugin := &pluginFlags{}
	cmd := &cobra.Command{
		Use:               "remove <plugin-dir>",
		Aliases:           []string{"rm"},
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		Example:           MsgRemoveExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: pluginDirCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := flags.projectRoot(cmd)
			if err != nil {
				return err
			}
			renderer, err := flags.renderer(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("project", root).
				Str("plugin_dir", args[0]).
				Msg("Removing plugin dependencies")

			result, err := remove.RemoveDependencies(cmd.Context(), remove.RemoveOptions{
				ProjectRoot: root,
				PluginDir:   args[0],
				Install:     plugin.installOptions(),
				Installer:   deps.Installer,
				ToolCheck:   deps.ToolCheck,
			})
			if result != nil {
				if rerr := renderer.RenderResult(result); rerr != nil {
					return rerr
				}
			}
			if err != nil {
				return fmt.Errorf(MsgErrRemove, err)
			}
			return nil
		},
	}
	plugin.register(cmd)
	return cmd
}

func newInstallCmd(flags *globalFlags, deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := flags.projectRoot(cmd)
			if err != nil {
				return err
			}
			renderer, err := flags.renderer(cmd)
			if err != nil {
				return err
			}

			err = install.RunInstaller(cmd.Context(), install.InstallOptions{
				ProjectRoot: root,
				Installer:   deps.Installer,
				ToolCheck:   deps.ToolCheck,
			})
			if err != nil {
				return fmt.Errorf(MsgErrInstall, err)
			}
			return renderer.RenderMessage(MsgInstallDone)
		},
	}
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := flags.projectRoot(cmd)
			if err != nil {
				return err
			}
			renderer, err := flags.renderer(cmd)
			if err != nil {
				return err
			}

			result, err := status.Status(status.StatusOptions{ProjectRoot: root})
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}
			return renderer.RenderStatus(result)
		},
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
				return err
			}

			root, err := flags.projectRoot(cmd)
			if err != nil {
				return err
			}
			target := filepath.Join(root, config.ProjectConfigFile)
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf(MsgErrConfigExist, target)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := os.WriteFile(target, []byte(config.DefaultContent()), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWrote, target)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "podkeeper version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
