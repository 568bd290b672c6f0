package kilm

import (
	"fmt"
	"os"

	"github.com/arthur-debert/kilm/internal/version"
	"github.com/arthur-debert/kilm/pkg/commands"
	"github.com/arthur-debert/kilm/pkg/errors"
	"github.com/arthur-debert/kilm/pkg/metadata"
	"github.com/arthur-debert/kilm/pkg/paths"
	"github.com/arthur-debert/kilm/pkg/types"
	"github.com/arthur-debert/kilm/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// libraryDir picks the positional argument, then setup.library_dir
func (a *app) libraryDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if dir := a.config().Setup.LibraryDir; dir != "" {
		return dir, nil
	}
	return "", errors.New(errors.ErrInvalidInput, MsgErrNoLibDir)
}

func parseKind(cmd *cobra.Command) (types.Kind, error) {
	s, _ := cmd.Flags().GetString("kind")
	kind, err := types.ParseKind(s)
	if err != nil {
		return "", errors.New(errors.ErrInvalidInput, err.Error())
	}
	return kind, nil
}

// libraryNamesCompletion offers the libraries configured in the profile
func (a *app) libraryNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	kind, err := parseKind(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	st, err := commands.Status(commands.StatusOptions{ProfileOptions: a.profileOptions(), Kind: kind})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	given := make(map[string]bool, len(args))
	for _, arg := range args {
		given[arg] = true
	}
	var names []string
	for _, lib := range st.Libraries {
		if !given[lib.Name] {
			names = append(names, lib.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (a *app) newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "setup [library-dir]",
		Short:   MsgSetupShort,
		Long:    MsgSetupLong,
		Example: MsgSetupExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.libraryDir(args)
			if err != nil {
				return err
			}
			cfg := a.config().Setup

			envVar := cfg.EnvVar
			if cmd.Flags().Changed("env-var") {
				envVar, _ = cmd.Flags().GetString("env-var")
			} else if meta, found, err := metadata.Read(a.fs, paths.ExpandHome(dir)); err == nil && found && meta.EnvVar != "" {
				envVar = meta.EnvVar
			}
			threeDEnvVar := cfg.ThreeDEnvVar
			if cmd.Flags().Changed("3d-env-var") {
				threeDEnvVar, _ = cmd.Flags().GetString("3d-env-var")
			}
			threeDDir := cfg.ThreeDDir
			if cmd.Flags().Changed("3d-dir") {
				threeDDir, _ = cmd.Flags().GetString("3d-dir")
			}
			noPin, _ := cmd.Flags().GetBool("no-pin")

			log.Info().Str("library_dir", dir).Str("env_var", envVar).Bool("dry_run", a.dryRun).Msg("Setting up libraries")

			report, err := commands.Setup(commands.SetupOptions{
				ProfileOptions: a.profileOptions(),
				LibraryDir:     dir,
				EnvVar:         envVar,
				ThreeDEnvVar:   threeDEnvVar,
				ThreeDDir:      threeDDir,
				Pin:            cfg.Pin && !noPin,
			})
			return a.renderReports(cmd, err, report)
		},
	}

	cmd.Flags().String("env-var", "", MsgFlagEnvVar)
	cmd.Flags().String("3d-env-var", "", MsgFlag3DEnvVar)
	cmd.Flags().String("3d-dir", "", MsgFlag3DDir)
	cmd.Flags().Bool("no-pin", false, MsgFlagNoPin)

	return cmd
}

func (a *app) newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apply -f <file>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		Args:    cobra.NoArgs,
		GroupID: "profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrApplyFile)
			}
			repo, _ := cmd.Flags().GetString("repo")
			hook := a.config().Hook

			reports, err := commands.Apply(cmd.Context(), commands.ApplyOptions{
				ProfileOptions: a.profileOptions(),
				File:           file,
				Git:            a.git,
				RepoDir:        repo,
				HookName:       hook.Name,
				Interpreter:    hook.Interpreter,
			})
			return a.renderReports(cmd, err, reports...)
		},
	}

	cmd.Flags().StringP("file", "f", "", MsgFlagFile)
	cmd.Flags().String("repo", ".", "Repository whose hook the declaration's hook block goes into")
	_ = cmd.MarkFlagFilename("file", "yaml", "yml")

	return cmd
}

func (a *app) newPinCmd(pinned bool) *cobra.Command {
	use, short, long := "pin", MsgPinShort, MsgPinLong
	if !pinned {
		use, short, long = "unpin", MsgUnpinShort, MsgUnpinLong
	}
	cmd := &cobra.Command{
		Use:               use + " <library>...",
		Short:             short,
		Long:              long,
		Args:              cobra.MinimumNArgs(1),
		GroupID:           "profile",
		ValidArgsFunction: a.libraryNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(cmd)
			if err != nil {
				return err
			}
			report, err := commands.Pin(commands.PinOptions{
				ProfileOptions: a.profileOptions(),
				Kind:           kind,
				Names:          args,
				Pinned:         pinned,
			})
			return a.renderReports(cmd, err, report)
		},
	}
	cmd.Flags().StringP("kind", "k", "symbol", MsgFlagKind)
	return cmd
}

func (a *app) newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove <library>...",
		Short:             MsgRemoveShort,
		Long:              MsgRemoveLong,
		Args:              cobra.MinimumNArgs(1),
		GroupID:           "profile",
		ValidArgsFunction: a.libraryNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(cmd)
			if err != nil {
				return err
			}
			report, err := commands.Remove(commands.RemoveOptions{
				ProfileOptions: a.profileOptions(),
				Kind:           kind,
				Names:          args,
			})
			return a.renderReports(cmd, err, report)
		},
	}
	cmd.Flags().StringP("kind", "k", "symbol", MsgFlagKind)
	return cmd
}

func (a *app) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Args:    cobra.NoArgs,
		GroupID: "profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind types.Kind
			if cmd.Flags().Changed("kind") {
				k, err := parseKind(cmd)
				if err != nil {
					return err
				}
				kind = k
			}
			st, err := commands.Status(commands.StatusOptions{ProfileOptions: a.profileOptions(), Kind: kind})
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderStatus(st)
		},
	}
	cmd.Flags().StringP("kind", "k", "", MsgFlagKind)
	return cmd
}

func (a *app) newAddHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add-hook [repo]",
		Short:   MsgAddHookShort,
		Long:    MsgAddHookLong,
		Example: MsgAddHookExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "library",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := "."
			if len(args) > 0 {
				repo = args[0]
			}
			hook := a.config().Hook
			if cmd.Flags().Changed("hook") {
				hook.Name, _ = cmd.Flags().GetString("hook")
			}
			if cmd.Flags().Changed("interpreter") {
				hook.Interpreter, _ = cmd.Flags().GetString("interpreter")
			}
			if blockFile, _ := cmd.Flags().GetString("block-file"); blockFile != "" {
				data, err := a.fs.ReadFile(blockFile)
				if err != nil {
					return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", blockFile).WithDetail("path", blockFile)
				}
				hook.Block = string(data)
			}

			opts := a.profileOptions()
			report, err := commands.AddHook(cmd.Context(), commands.AddHookOptions{
				FS:          opts.FS,
				DryRun:      opts.DryRun,
				MaxBackups:  opts.MaxBackups,
				Now:         opts.Now,
				Git:         a.git,
				RepoDir:     repo,
				HookName:    hook.Name,
				Interpreter: hook.Interpreter,
				Block:       hook.Block,
			})
			return a.renderReports(cmd, err, report)
		},
	}

	cmd.Flags().String("hook", "", MsgFlagHook)
	cmd.Flags().String("interpreter", "", MsgFlagInterpreter)
	cmd.Flags().String("block-file", "", MsgFlagBlock)

	return cmd
}

func (a *app) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "update [library-dir]",
		Short:   MsgUpdateShort,
		Long:    MsgUpdateLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "library",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.libraryDir(args)
			if err != nil {
				dir = "."
			}
			report, err := commands.Update(cmd.Context(), commands.UpdateOptions{
				FS:         a.fs,
				Git:        a.git,
				LibraryDir: dir,
				DryRun:     a.dryRun,
			})
			return a.renderReports(cmd, err, report)
		},
	}
}

func (a *app) newAdd3DCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add-3d [dir]",
		Short:   MsgAdd3DShort,
		Long:    MsgAdd3DLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "library",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			force, _ := cmd.Flags().GetBool("force")

			report, err := commands.Add3D(commands.Add3DOptions{
				FS:          a.fs,
				Dir:         dir,
				Name:        name,
				Description: description,
				Force:       force,
				DryRun:      a.dryRun,
			})
			return a.renderReports(cmd, err, report)
		},
	}

	cmd.Flags().String("name", "", MsgFlag3DName)
	cmd.Flags().String("description", "", MsgFlagDescription)
	cmd.Flags().Bool("force", false, MsgFlagForce)

	return cmd
}

func (a *app) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init [dir]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "library",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			envVar, _ := cmd.Flags().GetString("env-var")
			noEnvVar, _ := cmd.Flags().GetBool("no-env-var")
			force, _ := cmd.Flags().GetBool("force")

			report, err := commands.Init(commands.InitOptions{
				FS:          a.fs,
				Dir:         dir,
				Name:        name,
				Description: description,
				EnvVar:      envVar,
				NoEnvVar:    noEnvVar,
				Force:       force,
				DryRun:      a.dryRun,
			})
			return a.renderReports(cmd, err, report)
		},
	}

	cmd.Flags().String("name", "", MsgFlagName)
	cmd.Flags().String("description", "", MsgFlagDescription)
	cmd.Flags().String("env-var", "", MsgFlagInitEnvVar)
	cmd.Flags().Bool("no-env-var", false, MsgFlagNoEnvVar)
	cmd.Flags().Bool("force", false, MsgFlagForce)
	cmd.MarkFlagsMutuallyExclusive("env-var", "no-env-var")

	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("init")
			force, _ := cmd.Flags().GetBool("force")

			path := a.configFile
			if path == "" {
				path = paths.New().ConfigFilePath()
			}
			result, err := commands.GenConfig(commands.GenConfigOptions{
				FS:     a.fs,
				Config: a.config(),
				Write:  write,
				Path:   path,
				Force:  force,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case !write:
				fmt.Fprint(out, result.ConfigContent)
			case len(result.FilesWritten) == 0:
				fmt.Fprintf(out, MsgConfigExists, path)
			default:
				for _, f := range result.FilesWritten {
					fmt.Fprintf(out, MsgConfigWritten, f)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("init", false, MsgFlagConfigInit)
	cmd.Flags().Bool("force", false, MsgFlagForce)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
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

// printErr writes err to stderr in the requested format
func printErr(format string, err error) {
	f, perr := ui.ParseFormat(format)
	if perr != nil {
		f = ui.FormatAuto
	}
	r, rerr := ui.NewRenderer(f, os.Stderr)
	if rerr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	_ = r.RenderError(err)
}
