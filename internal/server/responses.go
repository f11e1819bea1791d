// ABOUTME: JSON shapes for API responses.
// ABOUTME: Dates render as YYYY-MM-DDTHH:MM:SS without a zone.
package server

import "github.com/harperreed/moodrun/internal/models"

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

type runJSON struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Distance  float64 `json:"distance"`
	TotalTime string  `json:"total_time"`
	Pace      string  `json:"pace"`
}

type moodJSON struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	PositivityLevel int    `json:"positivity_level"`
	StressLevel     int    `json:"stress_level"`
	EnergyLevel     int    `json:"energy_level"`
	CalmnessLevel   int    `json:"calmness_level"`
	MotivationLevel int    `json:"motivation_level"`
}

type recentsJSON struct {
	LatestRun  *runJSON  `json:"latest_run"`
	LatestMood *moodJSON `json:"latest_mood"`
}

func toRunJSON(r *models.Run) *runJSON {
	if r == nil {
		return nil
	}
	return &runJSON{
		ID:        r.ID,
		Name:      r.Name,
		Date:      models.FormatDate(r.Date),
		Distance:  r.Distance,
		TotalTime: r.TotalTime,
		Pace:      r.Pace,
	}
}

func toMoodJSON(m *models.Mood) *moodJSON {
	if m == nil {
		return nil
	}
	return &moodJSON{
		ID:              m.ID,
		Date:            models.FormatDate(m.Date),
		PositivityLevel: m.PositivityLevel,
		StressLevel:     m.StressLevel,
		EnergyLevel:     m.EnergyLevel,
		CalmnessLevel:   m.CalmnessLevel,
		MotivationLevel: m.MotivationLevel,
	}
}

func toRunList(runs []*models.Run) []*runJSON {
	out := make([]*runJSON, 0, len(runs))
	for _, r := range runs {
		out = append(out, toRunJSON(r))
	}
	return out
}

func toMoodList(moods []*models.Mood) []*moodJSON {
	out := make([]*moodJSON, 0, len(moods))
	for _, m := range moods {
		out = append(out, toMoodJSON(m))
	}
	return out
}
