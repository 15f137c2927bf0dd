package podkeeper

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Reference-counted Podfile management for plugin-based iOS projects"
	MsgAddShort        = "Register a plugin's pod dependencies"
	MsgRemoveShort     = "Release a plugin's pod dependencies"
	MsgInstallShort    = "Run pod install for the project"
	MsgStatusShort     = "Show registered dependencies and their counts"
	MsgConfigShort     = "Print the default configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgInstallDone = "pod install completed"
	MsgConfigWrote = "Wrote %s\n"

	// Error messages
	MsgErrAdd         = "failed to add plugin dependencies: %w"
	MsgErrRemove      = "failed to remove plugin dependencies: %w"
	MsgErrInstall     = "failed to run installer: %w"
	MsgErrStatus      = "failed to read status: %w"
	MsgErrFindProject = "failed to find project root: %w"
	MsgErrConfigExist = "%s already exists"

	// Flag descriptions
	MsgFlagVerbose            = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagProject            = "Project root holding the Podfile (default: discovered from the current directory)"
	MsgFlagOutput             = "Output format: auto, term, text or json"
	MsgFlagVar                = "Install variable NAME=value, substituted for $NAME in plugin declarations"
	MsgFlagLink               = "The plugin was added from a local checkout"
	MsgFlagAlternatePackaging = "Skip libraries flagged skip_in_alternate_packaging"
	MsgFlagWrite              = "Write the defaults to .podkeeper.toml in the project root"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/remove-example.txt
	msgRemoveExampleRaw string
	MsgRemoveExample    = strings.TrimRight(msgRemoveExampleRaw, "\n")

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = msgFallbackWarningRaw

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = msgUsageTemplateRaw
)
