package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"signquiz-backend/internal/fallback"
	"signquiz-backend/internal/models"
)

var fixedNow = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestCatalogProvider_UsesRepository(t *testing.T) {
	repo := &fakeCategories{categories: []models.Category{{ID: "7", Name: "Colors"}}}
	p := NewCatalogProvider(repo, fallback.Demo())

	cats, usedFallback := p.ListCategories(context.Background())
	if usedFallback {
		t.Fatal("Expected repository data, got fallback")
	}
	if len(cats) != 1 || cats[0].ID != "7" {
		t.Errorf("Unexpected categories: %+v", cats)
	}
}

func TestCatalogProvider_FallbackOnError(t *testing.T) {
	p := NewCatalogProvider(&fakeCategories{err: errors.New("connection refused")}, fallback.Demo())
	p.now = clock

	cats, usedFallback := p.ListCategories(context.Background())
	if !usedFallback {
		t.Fatal("Expected fallback flag to be set")
	}
	if len(cats) != 4 {
		t.Fatalf("Expected 4 demo categories, got %d", len(cats))
	}
	if cats[0].Name != "Basic Alphabet" {
		t.Errorf("Expected categories sorted by name, got %q first", cats[0].Name)
	}
}

func TestCatalogProvider_NilRepository(t *testing.T) {
	p := NewCatalogProvider(nil, fallback.Demo())
	if _, usedFallback := p.ListCategories(context.Background()); !usedFallback {
		t.Error("Expected fallback without a repository")
	}
}

func TestCatalogProvider_EmptyResultIsNotAnError(t *testing.T) {
	p := NewCatalogProvider(&fakeCategories{categories: []models.Category{}}, fallback.Demo())

	cats, usedFallback := p.ListCategories(context.Background())
	if usedFallback {
		t.Error("Expected an empty successful result to be returned as is")
	}
	if len(cats) != 0 {
		t.Errorf("Expected no categories, got %d", len(cats))
	}
}

func TestQuestionBank_FallbackOnError(t *testing.T) {
	b := NewQuestionBank(&fakeQuestions{err: errors.New("timeout")}, fallback.Demo())
	b.now = clock

	qs, usedFallback := b.ListQuestions(context.Background(), "1")
	if !usedFallback {
		t.Fatal("Expected fallback flag to be set")
	}
	if len(qs) != 2 || qs[0].ID != "q1" {
		t.Errorf("Unexpected fallback questions: %+v", qs)
	}

	qs, _ = b.ListQuestions(context.Background(), "42")
	if len(qs) != 1 || qs[0].ID != "default" || qs[0].CategoryID != "42" {
		t.Errorf("Expected default question for unknown category, got %+v", qs)
	}
}

func TestQuestionBank_UsesRepository(t *testing.T) {
	repo := &fakeQuestions{byCategory: map[string][]models.Question{
		"1": {{ID: "x", CategoryID: "1", CorrectAnswer: "A"}},
	}}
	b := NewQuestionBank(repo, fallback.Demo())

	qs, usedFallback := b.ListQuestions(context.Background(), "1")
	if usedFallback || len(qs) != 1 || qs[0].ID != "x" {
		t.Errorf("Expected repository questions, got %+v (fallback=%v)", qs, usedFallback)
	}
}

func TestProgressStore_ListEvents(t *testing.T) {
	events := []models.AnswerEvent{{ID: "e1", UserID: "u1", QuestionID: "q1", IsCorrect: true}}
	s := NewProgressStore(&fakeProgress{events: events}, nil, fallback.Demo())
	got, usedFallback := s.ListEvents(context.Background(), "u1")
	if usedFallback || len(got) != 1 {
		t.Errorf("Expected repository events, got %+v (fallback=%v)", got, usedFallback)
	}

	s = NewProgressStore(&fakeProgress{err: errors.New("down")}, nil, fallback.Demo())
	s.now = clock
	got, usedFallback = s.ListEvents(context.Background(), "u1")
	if !usedFallback || len(got) != 3 {
		t.Fatalf("Expected 3 sample events, got %d (fallback=%v)", len(got), usedFallback)
	}
	if got[0].UserID != "u1" {
		t.Errorf("Expected sample events stamped with the user id, got %q", got[0].UserID)
	}
}
