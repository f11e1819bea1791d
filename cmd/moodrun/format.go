// ABOUTME: Shared output helpers for CLI commands.
// ABOUTME: Colored one-line renderings of runs and moods, plus ID parsing.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/harperreed/moodrun/internal/models"
)

var (
	faint  = color.New(color.Faint)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	bold   = color.New(color.Bold)
)

func printRun(w io.Writer, r *models.Run) {
	fmt.Fprintf(w, "%s %s %s %6.2f  %s  pace %s\n",
		faint.Sprintf("#%-4d", r.ID),
		faint.Sprint(r.Date.Format("2006-01-02 15:04")),
		padRight(truncate(r.Name, 24), 24),
		r.Distance,
		r.TotalTime,
		bold.Sprint(r.Pace))
}

func printMood(w io.Writer, m *models.Mood) {
	fmt.Fprintf(w, "%s %s positivity %2d  stress %2d  energy %2d  calmness %2d  motivation %2d\n",
		faint.Sprintf("#%-4d", m.ID),
		faint.Sprint(m.Date.Format("2006-01-02 15:04")),
		m.PositivityLevel,
		m.StressLevel,
		m.EnergyLevel,
		m.CalmnessLevel,
		m.MotivationLevel)
}

// parseID parses a positional record ID.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
