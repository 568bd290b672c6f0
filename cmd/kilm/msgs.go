package kilm

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Idempotent KiCad library configuration"
	MsgSetupShort      = "Add the libraries of a directory to KiCad"
	MsgApplyShort      = "Reconcile KiCad with a declaration file"
	MsgPinShort        = "Pin libraries in KiCad's library browser"
	MsgUnpinShort      = "Unpin libraries"
	MsgRemoveShort     = "Remove libraries from a library table"
	MsgStatusShort     = "Show the KiCad profile and its libraries"
	MsgAddHookShort    = "Manage the kilm block in a repository git hook"
	MsgUpdateShort     = "Pull a library collection and list new libraries"
	MsgInitShort       = "Prepare a directory as a library collection"
	MsgAdd3DShort      = "Mark a directory as a 3D model library"
	MsgConfigShort     = "Print or initialize kilm configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	MsgPinLong    = "Pin the named libraries so KiCad lists them first. The libraries must already be configured."
	MsgUnpinLong  = "Clear the pinned flag of the named libraries."
	MsgRemoveLong = "Remove the named libraries from a library table. Their pins in kicad_common.json are left alone."

	// Status messages
	MsgConfigWritten = "Wrote %s\n"
	MsgConfigExists  = "%s already exists, use --force to replace it\n"
	MsgVersionFormat = "kilm version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand  = "no command specified"
	MsgErrNoLibDir   = "no library directory given and setup.library_dir is not configured"
	MsgErrApplyFile  = "--file is required"
	MsgErrRenderInit = "failed to set up output: %w"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun         = "Print the changes without writing anything"
	MsgFlagConfig         = "Config file (default $XDG_CONFIG_HOME/kilm/config.toml)"
	MsgFlagKiCadConfigDir = "KiCad configuration directory (default: auto-detect)"
	MsgFlagMaxBackups     = "Backups kept per file after a write (0 keeps all)"
	MsgFlagFormat         = "Output format: auto, terminal, text or json"
	MsgFlagKind           = "Library kind: symbol or footprint"
	MsgFlagEnvVar         = "Path variable for the library directory (empty writes absolute uris)"
	MsgFlag3DEnvVar       = "Path variable for the 3D model directory"
	MsgFlag3DDir          = "3D model directory"
	MsgFlagNoPin          = "Do not pin the libraries setup adds"
	MsgFlagFile           = "YAML declaration to apply"
	MsgFlagHook           = "Hook name (default from config, post-merge)"
	MsgFlagInterpreter    = "Interpreter line for a new hook file"
	MsgFlagBlock          = "File holding the managed block text (default from config)"
	MsgFlagName           = "Collection name (default: directory name)"
	MsgFlagDescription    = "Collection description"
	MsgFlag3DName         = "3D library name (default: directory name)"
	MsgFlagInitEnvVar     = "Path variable name recorded in kilm.yaml"
	MsgFlagNoEnvVar       = "Record no path variable"
	MsgFlagForce          = "Replace existing files"
	MsgFlagConfigInit     = "Write a commented config file instead of printing"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/setup-long.txt
	msgSetupLongRaw string
	MsgSetupLong    = strings.TrimSpace(msgSetupLongRaw)

	//go:embed msgs/setup-example.txt
	msgSetupExampleRaw string
	MsgSetupExample    = strings.TrimRight(msgSetupExampleRaw, "\n")

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/add-hook-long.txt
	msgAddHookLongRaw string
	MsgAddHookLong    = strings.TrimSpace(msgAddHookLongRaw)

	//go:embed msgs/add-hook-example.txt
	msgAddHookExampleRaw string
	MsgAddHookExample    = strings.TrimRight(msgAddHookExampleRaw, "\n")

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/add-3d-long.txt
	msgAdd3DLongRaw string
	MsgAdd3DLong    = strings.TrimSpace(msgAdd3DLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
