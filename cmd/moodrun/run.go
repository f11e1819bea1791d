// ABOUTME: CLI commands for managing runs.
// ABOUTME: Supports add, list, show, and delete subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/moodrun/internal/models"
	"github.com/harperreed/moodrun/internal/tracker"
)

var (
	runName string
	runDate string
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"r"},
	Short:   "Manage runs",
	Long: `Log runs and see your pace.

Pace is total time divided by distance, in HH:MM:SS per unit. Use whatever
distance unit you like (miles or km); pace follows it.

COMMANDS:

  add      Log a run
  list     List all runs
  show     Show one run
  delete   Delete a run`,
}

var runAddCmd = &cobra.Command{
	Use:   "add <distance> <HH:MM:SS>",
	Short: "Log a run",
	Long: `Log a run. The date defaults to now.

Examples:
  moodrun run add 5 00:45:00
  moodrun run add 26.2 03:30:00 --name "Marathon" --date 2025-04-21T10:00`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		distance, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid distance: %s", args[0])
		}

		date := runDate
		if date == "" {
			date = models.Now().Format(models.MinuteLayout)
		}

		r, err := svc.CreateRun(commandContext(cmd), tracker.RunInputFrom(runName, date, distance, args[1]))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		green.Fprintf(out, "✓ Added run\n")
		printRun(out, r)
		return nil
	},
}

var runListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all runs",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := svc.ListRuns(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs found.")
			return nil
		}
		for _, r := range runs {
			printRun(out, r)
		}
		return nil
	},
}

var runShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		r, err := svc.GetRun(commandContext(cmd), id)
		if err != nil {
			return err
		}
		printRun(cmd.OutOrStdout(), r)
		return nil
	},
}

var runDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a run",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteRun(commandContext(cmd), id); err != nil {
			return err
		}
		yellow.Fprintf(cmd.OutOrStdout(), "✗ Deleted run #%d\n", id)
		return nil
	},
}

func init() {
	runAddCmd.Flags().StringVarP(&runName, "name", "n", "Run", "name of the run")
	runAddCmd.Flags().StringVarP(&runDate, "date", "d", "", "start time, YYYY-MM-DDTHH:MM (default now)")

	runCmd.AddCommand(runAddCmd, runListCmd, runShowCmd, runDeleteCmd)
	rootCmd.AddCommand(runCmd)
}
