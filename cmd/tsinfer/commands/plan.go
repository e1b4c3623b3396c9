package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/tsinfer/internal/adapters/cache"
	"go.trai.ch/tsinfer/internal/adapters/config"
	"go.trai.ch/tsinfer/internal/adapters/telemetry/progrock"
	"go.trai.ch/tsinfer/internal/app"
	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [workspace]",
		Short: "Derive task definitions for every tsconfig file in a workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := "."
			if len(args) == 1 {
				workspace = args[0]
			}

			settings, err := config.Load(workspace)
			if err != nil {
				return zerr.Wrap(err, "failed to load options file")
			}
			applyFlagOverrides(cmd, &settings)

			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				settings.Options.Verbose = true
				if l, ok := c.components.Logger.(interface{ SetVerbose() }); ok {
					l.SetVerbose()
				}
			}

			if settings.CacheDisabled {
				c.components.App.SetStore(cache.NewNoop())
			} else {
				dir := settings.CacheDir
				if dir == "" {
					dir = cache.DefaultDir()
				}
				if !filepath.IsAbs(dir) {
					dir = filepath.Join(workspace, dir)
				}
				c.components.App.SetStore(cache.NewStore(dir))
			}

			if progress, _ := cmd.Flags().GetBool("progress"); progress {
				c.components.App.SetTelemetry(progrock.New())
			}

			workers, _ := cmd.Flags().GetInt("workers")
			result, err := c.components.App.Plan(cmd.Context(), workspace, app.RunOptions{
				Options:     settings.Options,
				NamedInputs: settings.NamedInputs,
				Workers:     workers,
			})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return zerr.Wrap(err, "failed to encode result")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if len(result.Errors) > 0 {
				return domain.ErrPlanFailed
			}
			return nil
		},
	}

	cmd.Flags().String("typecheck-target", "", "Typecheck target name (empty disables the target)")
	cmd.Flags().String("build-target", "", "Build target name (empty disables the target)")
	cmd.Flags().String("build-config", "", "Config filename the build target is derived for")
	cmd.Flags().Bool("no-cache", false, "Bypass the metadata cache")
	cmd.Flags().String("cache-dir", "", "Metadata cache directory, relative to the workspace")
	cmd.Flags().Bool("progress", false, "Render per-file progress")
	cmd.Flags().IntP("workers", "w", 0, "Maximum concurrent derivations (0 = unbounded)")
	return cmd
}

// applyFlagOverrides layers explicitly-set flags over the options file. An
// explicitly empty target name disables that target.
func applyFlagOverrides(cmd *cobra.Command, settings *config.Settings) {
	if cmd.Flags().Changed("typecheck-target") {
		settings.Options.TypecheckTargetName, _ = cmd.Flags().GetString("typecheck-target")
	}
	if cmd.Flags().Changed("build-target") {
		settings.Options.BuildTargetName, _ = cmd.Flags().GetString("build-target")
	}
	if cmd.Flags().Changed("build-config") {
		settings.Options.BuildConfigName, _ = cmd.Flags().GetString("build-config")
	}
	if cmd.Flags().Changed("no-cache") {
		noCache, _ := cmd.Flags().GetBool("no-cache")
		settings.CacheDisabled = settings.CacheDisabled || noCache
	}
	if cmd.Flags().Changed("cache-dir") {
		settings.CacheDir, _ = cmd.Flags().GetString("cache-dir")
	}
}
