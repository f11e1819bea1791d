// ABOUTME: CLI command showing the latest run and mood.
// ABOUTME: Either side prints a placeholder when nothing is logged.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recentsCmd = &cobra.Command{
	Use:   "recents",
	Short: "Show the most recent run and mood",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := svc.Recents(commandContext(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		bold.Fprintln(out, "Latest run")
		if rec.LatestRun != nil {
			printRun(out, rec.LatestRun)
		} else {
			fmt.Fprintln(out, faint.Sprint("  none yet"))
		}

		bold.Fprintln(out, "Latest mood")
		if rec.LatestMood != nil {
			printMood(out, rec.LatestMood)
		} else {
			fmt.Fprintln(out, faint.Sprint("  none yet"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recentsCmd)
}
