package models

type OverallStats struct {
	Completed   int `json:"completed"`
	Correct     int `json:"correct"`
	AccuracyPct int `json:"accuracy_pct"`
}

type CategoryStats struct {
	Category      Category `json:"category"`
	Total         int      `json:"total"`
	Completed     int      `json:"completed"`
	Correct       int      `json:"correct"`
	AccuracyPct   int      `json:"accuracy_pct"`
	CompletionPct int      `json:"completion_pct"`
}

type QuizSummary struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Rating     string `json:"rating"`
}

// Percentage returns part/whole as a whole percent, rounding halves up.
// It is 0 when whole is not positive.
func Percentage(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
