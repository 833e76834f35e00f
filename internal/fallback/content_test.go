package fallback

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"signquiz-backend/internal/models"
)

var now = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

func TestDemoCategories(t *testing.T) {
	cats := Demo().Categories(now)
	if len(cats) != 4 {
		t.Fatalf("Expected 4 categories, got %d", len(cats))
	}

	wantNames := []string{"Basic Alphabet", "Common Words", "Greetings", "Numbers"}
	for i, name := range wantNames {
		if cats[i].Name != name {
			t.Errorf("Position %d: expected %q, got %q", i, name, cats[i].Name)
		}
		if !cats[i].CreatedAt.Equal(now) {
			t.Errorf("Expected created_at stamped with now for %q", cats[i].Name)
		}
	}
}

func TestDemoQuestions(t *testing.T) {
	c := Demo()

	alphabet := c.Questions("1", now)
	if len(alphabet) != 2 {
		t.Fatalf("Expected 2 alphabet questions, got %d", len(alphabet))
	}
	if alphabet[0].Media != models.ImageMedia("/images/sign-a.jpg") {
		t.Errorf("Unexpected media on q1: %+v", alphabet[0].Media)
	}
	if !alphabet[1].Media.IsNone() {
		t.Errorf("Expected q2 to have no media, got %+v", alphabet[1].Media)
	}
	if alphabet[1].Options[1].Media != models.ImageMedia("/images/sign-e.jpg") {
		t.Errorf("Unexpected option media: %+v", alphabet[1].Options[1].Media)
	}
	if alphabet[1].Options[1].QuestionID != "q2" {
		t.Errorf("Expected option to point at q2, got %q", alphabet[1].Options[1].QuestionID)
	}

	numbers := c.Questions("2", now)
	if len(numbers) != 1 || numbers[0].CorrectAnswer != "3" || numbers[0].Media.Kind != models.MediaVideo {
		t.Errorf("Unexpected numbers set: %+v", numbers)
	}
}

func TestDemoQuestions_DefaultForUnknownCategory(t *testing.T) {
	qs := Demo().Questions("99", now)
	if len(qs) != 1 {
		t.Fatalf("Expected one default question, got %d", len(qs))
	}
	if qs[0].ID != "default" || qs[0].CategoryID != "99" {
		t.Errorf("Unexpected default question %+v", qs[0])
	}
	if len(qs[0].Options) != 4 || qs[0].CorrectAnswer != "Sample Answer" {
		t.Errorf("Unexpected default options %+v", qs[0].Options)
	}
}

func TestDemoQuestions_ReturnsCopies(t *testing.T) {
	c := Demo()
	first := c.Questions("1", now)
	first[0].Options[0].OptionText = "changed"

	if c.Questions("1", now)[0].Options[0].OptionText != "A" {
		t.Error("Expected mutation of a returned slice not to leak")
	}
}

func TestDemoProgress(t *testing.T) {
	events := Demo().Progress("demo-user", now)
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if !events[0].CompletedAt.Equal(now.Add(-24 * time.Hour)) {
		t.Errorf("Unexpected completed_at %v", events[0].CompletedAt)
	}
	if !events[2].CompletedAt.Equal(now.Add(-12 * time.Hour)) || events[2].IsCorrect {
		t.Errorf("Unexpected third event %+v", events[2])
	}
	for _, e := range events {
		if e.UserID != "demo-user" {
			t.Errorf("Expected user demo-user, got %q", e.UserID)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	body := []byte(`
categories:
  - {id: "7", name: Colours, description: Red green blue}
default_questions:
  - id: d1
    text: Pick one
    correct_answer: "yes"
    options: [{id: o1, text: "yes"}, {id: o2, text: "no"}]
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cats := c.Categories(now); len(cats) != 1 || cats[0].Name != "Colours" {
		t.Errorf("Unexpected categories %+v", cats)
	}
	if qs := c.Questions("7", now); len(qs) != 1 || qs[0].ID != "d1" {
		t.Errorf("Unexpected questions %+v", qs)
	}
	if len(c.Progress("u", now)) != 0 {
		t.Error("Expected no progress entries")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no default questions", "categories: []\n"},
		{"bad age", "default_questions: [{id: d}]\nprogress: [{id: p, age: soon}]\n"},
		{"bad media kind", "default_questions: [{id: d, media: {kind: audio, url: /x.mp3}}]\n"},
		{"not yaml", "categories: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.body)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
