package kilm

import (
	"fmt"
	"runtime"
	"time"

	"github.com/arthur-debert/kilm/internal/version"
	"github.com/arthur-debert/kilm/pkg/commands"
	"github.com/arthur-debert/kilm/pkg/config"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/filesystem"
	"github.com/arthur-debert/kilm/pkg/logging"
	"github.com/arthur-debert/kilm/pkg/paths"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/arthur-debert/kilm/pkg/vcs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// env is what commands touch outside the process
type env struct {
	fs   types.FS
	git  vcs.Runner
	goos string
	now  func() time.Time
}

// app carries the global flags and the loaded configuration to the
// subcommands
type app struct {
	env

	verbosity      int
	configFile     string
	kicadConfigDir string
	dryRun         bool
	maxBackups     int
	format         string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(env{fs: filesystem.NewOS(), git: vcs.Git{}, goos: runtime.GOOS})
}

func newRootCmd(e env) *cobra.Command {
	initTemplateFormatting()
	a := &app{env: e}

	rootCmd := &cobra.Command{
		Use:     "kilm",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupWithOptions(logging.Options{Verbosity: a.verbosity, Console: cmd.ErrOrStderr()})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&a.kicadConfigDir, "kicad-config-dir", "", MsgFlagKiCadConfigDir)
	pf.BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.IntVar(&a.maxBackups, "max-backups", 5, MsgFlagMaxBackups)
	pf.StringVar(&a.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "profile", Title: "PROFILE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "library", Title: "LIBRARIES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newSetupCmd())
	rootCmd.AddCommand(a.newApplyCmd())
	rootCmd.AddCommand(a.newPinCmd(true))
	rootCmd.AddCommand(a.newPinCmd(false))
	rootCmd.AddCommand(a.newRemoveCmd())
	rootCmd.AddCommand(a.newStatusCmd())
	rootCmd.AddCommand(a.newAddHookCmd())
	rootCmd.AddCommand(a.newUpdateCmd())
	rootCmd.AddCommand(a.newInitCmd())
	rootCmd.AddCommand(a.newAdd3DCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig layers defaults, the user file, the environment and the
// flags that were set explicitly
func (a *app) loadConfig(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("kicad-config-dir") {
		overrides["kicad.config_dir"] = a.kicadConfigDir
	}
	if flags.Changed("max-backups") {
		overrides["backups.max"] = a.maxBackups
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigDir: paths.New().ConfigDir(),
		File:      a.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// config returns the loaded configuration, or the defaults when the
// command skipped loading
func (a *app) config() *config.Config {
	if a.cfg == nil {
		a.cfg = config.Default()
	}
	return a.cfg
}

func (a *app) profileOptions() commands.ProfileOptions {
	cfg := a.config()
	return commands.ProfileOptions{
		FS:             a.fs,
		KiCadConfigDir: cfg.KiCad.ConfigDir,
		GOOS:           a.goos,
		DryRun:         a.dryRun,
		MaxBackups:     cfg.Backups.Max,
		Now:            a.now,
	}
}

func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	r, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, fmt.Errorf(MsgErrRenderInit, err)
	}
	return r, nil
}

// renderReports prints whatever the command produced, then returns its
// error. Partial results are shown before a failure.
func (a *app) renderReports(cmd *cobra.Command, cmdErr error, reports ...*ui.Report) error {
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	for _, rep := range reports {
		if rep == nil {
			continue
		}
		if err := r.RenderReport(rep); err != nil {
			return err
		}
	}
	return cmdErr
}

// Execute runs the CLI and returns the process exit status
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		printErr(format, err)
		return errors.ExitCode(err)
	}
	return 0
}
