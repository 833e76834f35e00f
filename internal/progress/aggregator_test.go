package progress

import (
	"testing"
	"time"

	"signquiz-backend/internal/models"
)

var base = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

func sampleEvents() []models.AnswerEvent {
	return []models.AnswerEvent{
		{ID: "1", UserID: "demo-user", QuestionID: "q1", SelectedAnswer: "A", IsCorrect: true, CompletedAt: base.Add(-24 * time.Hour)},
		{ID: "2", UserID: "demo-user", QuestionID: "q2", SelectedAnswer: "Option 2", IsCorrect: true, CompletedAt: base.Add(-24 * time.Hour)},
		{ID: "3", UserID: "demo-user", QuestionID: "q3", SelectedAnswer: "2", IsCorrect: false, CompletedAt: base.Add(-12 * time.Hour)},
	}
}

func sampleIndex() *QuestionIndex {
	return NewQuestionIndex(
		models.Question{ID: "q1", CategoryID: "1"},
		models.Question{ID: "q2", CategoryID: "1"},
		models.Question{ID: "q3", CategoryID: "2"},
		models.Question{ID: "q9", CategoryID: "5"},
		models.Question{ID: "q10", CategoryID: "5"},
	)
}

func TestOverallStats(t *testing.T) {
	tests := []struct {
		name   string
		events []models.AnswerEvent
		want   models.OverallStats
	}{
		{"empty log", nil, models.OverallStats{}},
		{"sample log", sampleEvents(), models.OverallStats{Completed: 3, Correct: 2, AccuracyPct: 67}},
		{"one wrong", sampleEvents()[2:], models.OverallStats{Completed: 1, Correct: 0, AccuracyPct: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := OverallStats(tc.events); got != tc.want {
				t.Errorf("Expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestCategoryStats(t *testing.T) {
	idx := sampleIndex()

	tests := []struct {
		name     string
		category string
		want     models.CategoryStats
	}{
		{"alphabet", "1", models.CategoryStats{Total: 2, Completed: 2, Correct: 2, AccuracyPct: 100, CompletionPct: 100}},
		{"numbers", "2", models.CategoryStats{Total: 1, Completed: 1, Correct: 0, AccuracyPct: 0, CompletionPct: 100}},
		// categories beyond the first two are not silently dropped
		{"no events yet", "5", models.CategoryStats{Total: 2, Completed: 0, Correct: 0, AccuracyPct: 0, CompletionPct: 0}},
		{"unknown category", "42", models.CategoryStats{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cat := models.Category{ID: tc.category}
			tc.want.Category = cat
			if got := CategoryStats(sampleEvents(), cat, idx); got != tc.want {
				t.Errorf("Expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestCategoryStats_CompletionClamped(t *testing.T) {
	idx := NewQuestionIndex(models.Question{ID: "q1", CategoryID: "1"})
	events := append(sampleEvents()[:1], sampleEvents()[:1]...)

	got := CategoryStats(events, models.Category{ID: "1"}, idx)
	if got.Completed != 2 {
		t.Errorf("Expected 2 completed, got %d", got.Completed)
	}
	if got.CompletionPct != 100 {
		t.Errorf("Expected completion clamped to 100, got %d", got.CompletionPct)
	}
}

func TestQuestionIndex_AddIgnoresRepeats(t *testing.T) {
	idx := NewQuestionIndex(models.Question{ID: "q1", CategoryID: "1"})
	idx.Add(models.Question{ID: "q1", CategoryID: "1"})

	if idx.Total("1") != 1 {
		t.Errorf("Expected total 1, got %d", idx.Total("1"))
	}
	if !idx.Belongs("q1", "1") || idx.Belongs("q1", "2") {
		t.Error("Unexpected membership for q1")
	}
}

func TestRecentActivity(t *testing.T) {
	got := RecentActivity(sampleEvents(), 5)
	if len(got) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(got))
	}

	wantOrder := []string{"3", "1", "2"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("Position %d: expected event %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestRecentActivity_Limits(t *testing.T) {
	events := sampleEvents()

	if got := RecentActivity(events, 1); len(got) != 1 || got[0].ID != "3" {
		t.Errorf("Expected only the latest event, got %+v", got)
	}
	if got := RecentActivity(events, 0); len(got) != 0 {
		t.Errorf("Expected nothing for n=0, got %d", len(got))
	}
	if got := RecentActivity(nil, 5); got == nil || len(got) != 0 {
		t.Errorf("Expected an empty slice, got %v", got)
	}
}

func TestRecentActivity_DoesNotMutateInput(t *testing.T) {
	events := sampleEvents()
	RecentActivity(events, 5)

	if events[0].ID != "1" || events[2].ID != "3" {
		t.Error("Expected the input log to keep its order")
	}
}
