// ABOUTME: CLI commands for managing moods.
// ABOUTME: Supports add, list, show, and delete subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harperreed/moodrun/internal/models"
	"github.com/harperreed/moodrun/internal/tracker"
)

var moodDate string

var moodCmd = &cobra.Command{
	Use:     "mood",
	Aliases: []string{"m"},
	Short:   "Manage moods",
	Long: `Log how you feel as five levels from 1 to 10.

LEVELS (in argument order):

  positivity  stress  energy  calmness  motivation

COMMANDS:

  add      Log a mood
  list     List all moods
  show     Show one mood
  delete   Delete a mood`,
}

var moodAddCmd = &cobra.Command{
	Use:   "add <positivity> <stress> <energy> <calmness> <motivation>",
	Short: "Log a mood",
	Long: `Log a mood. The date defaults to now.

Examples:
  moodrun mood add 7 3 6 8 5
  moodrun mood add 4 8 3 2 5 --date 2025-01-15T21:30`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := []string{
			models.FieldPositivity,
			models.FieldStress,
			models.FieldEnergy,
			models.FieldCalmness,
			models.FieldMotivation,
		}
		var levels [5]int
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%s must be an integer: %s", fields[i], arg)
			}
			levels[i] = n
		}

		in := tracker.MoodInputFrom(levels[0], levels[1], levels[2], levels[3], levels[4], moodDate)
		m, err := svc.CreateMood(commandContext(cmd), in)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		green.Fprintf(out, "✓ Added mood\n")
		printMood(out, m)
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all moods",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		moods, err := svc.ListMoods(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to list moods: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(moods) == 0 {
			fmt.Fprintln(out, "No moods found.")
			return nil
		}
		for _, m := range moods {
			printMood(out, m)
		}
		return nil
	},
}

var moodShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one mood",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		m, err := svc.GetMood(commandContext(cmd), id)
		if err != nil {
			return err
		}
		printMood(cmd.OutOrStdout(), m)
		return nil
	},
}

var moodDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a mood",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := svc.DeleteMood(commandContext(cmd), id); err != nil {
			return err
		}
		yellow.Fprintf(cmd.OutOrStdout(), "✗ Deleted mood #%d\n", id)
		return nil
	},
}

func init() {
	moodAddCmd.Flags().StringVarP(&moodDate, "date", "d", "", "YYYY-MM-DDTHH:MM[:SS] (default now)")

	moodCmd.AddCommand(moodAddCmd, moodListCmd, moodShowCmd, moodDeleteCmd)
	rootCmd.AddCommand(moodCmd)
}
