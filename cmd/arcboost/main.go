package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GlobalFlags holds persistent flags shared by all commands
type GlobalFlags struct {
	ConfigPath string
}

// ApplyFlags holds flags for the apply command
type ApplyFlags struct {
	IDs []string
	All bool
}

// RestoreFlags holds flags for the restore command
type RestoreFlags struct {
	Yes bool
}

// buildRoot creates the root command and wires all subcommands
func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	applyFlags := &ApplyFlags{}
	restoreFlags := &RestoreFlags{}

	arcCommand := command{flags: globalFlags, out: os.Stdout, in: os.Stdin}

	root := createRootCommand(globalFlags)
	root.AddCommand(
		createListCommand(arcCommand),
		createStatusCommand(arcCommand),
		createApplyCommand(arcCommand, applyFlags),
		createPlanCommand(arcCommand),
		createRestoreCommand(arcCommand, restoreFlags),
		createServeCommand(arcCommand, globalFlags),
	)
	return root
}

// createRootCommand creates the root command with minimal persistent flags
func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "arcboost",
		Short: "Apply and roll back gaming performance tweaks",
		Long: `ArcBoost applies a curated set of named, reversible system tweaks
and keeps track of what it changed so everything can be rolled back.

Examples:
  arcboost list                       # Show the tweak catalog
  arcboost apply --all                # Apply every tweak
  arcboost apply --ids=game_mode_enable,disable_nagle
  arcboost restore                    # Roll back everything restorable
  arcboost serve                      # Start the HTTP API`,
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file (optional)")
	return root
}

// createListCommand creates the list subcommand
func createListCommand(arcCommand command) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the tweak catalog",
		Long: `Show every known tweak grouped by category, marking which ones
are currently applied and which require administrator rights.

Examples:
  arcboost list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return arcCommand.List()
		},
	}
}

// createStatusCommand creates the status subcommand
func createStatusCommand(arcCommand command) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied tweaks and elevation",
		Long: `Show which tweaks are currently tracked as applied, when the
tracking file was last written, and whether this process is elevated.

Examples:
  arcboost status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return arcCommand.Status()
		},
	}
}

// createApplyCommand creates the apply subcommand
func createApplyCommand(arcCommand command, applyFlags *ApplyFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply tweaks",
		Long: `Apply the selected tweaks. Tweaks requiring administrator rights
are skipped when the process is not elevated; one failure never stops
the rest of the batch.

Examples:
  arcboost apply --all
  arcboost apply --ids=power_plan_high,disable_nagle`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return arcCommand.Apply(ApplyFlags{IDs: applyFlags.IDs, All: applyFlags.All})
		},
	}
	cmd.Flags().StringSliceVar(&applyFlags.IDs, "ids", nil, "comma-separated tweak ids")
	cmd.Flags().BoolVar(&applyFlags.All, "all", false, "apply every tweak in the catalog")
	return cmd
}

// createPlanCommand creates the plan subcommand
func createPlanCommand(arcCommand command) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Preview what restore would do",
		Long: `Show which applied tweaks would be rolled back by restore and
which are one-way and cannot be undone.

Examples:
  arcboost plan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return arcCommand.Plan()
		},
	}
}

// createRestoreCommand creates the restore subcommand
func createRestoreCommand(arcCommand command, restoreFlags *RestoreFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Roll back applied tweaks",
		Long: `Roll back every applied tweak that has a restore action.
One-way tweaks are listed but left untouched.

Examples:
  arcboost restore          # asks for confirmation
  arcboost restore --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return arcCommand.Restore(RestoreFlags{Yes: restoreFlags.Yes})
		},
	}
	cmd.Flags().BoolVar(&restoreFlags.Yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

// createServeCommand creates the serve subcommand
func createServeCommand(arcCommand command, globalFlags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [config.toml]",
		Short: "Start the HTTP API server",
		Long: `Start an HTTP server exposing the catalog, state, apply and
restore operations. Metrics exposition is enabled via config.

Examples:
  arcboost serve
  arcboost serve config.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := globalFlags.ConfigPath
			if len(args) > 0 {
				configPath = args[0]
			}
			return arcCommand.Serve(configPath)
		},
	}
}
