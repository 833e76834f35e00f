// Package progress computes learner statistics from a snapshot of the
// progress log. Nothing here performs I/O or mutates its inputs.
package progress

import (
	"sort"

	"signquiz-backend/internal/models"
)

// Membership answers which questions make up a category.
type Membership interface {
	Belongs(questionID, categoryID string) bool
	Total(categoryID string) int
}

// QuestionIndex derives membership from each question's own category id.
type QuestionIndex struct {
	categoryOf map[string]map[string]struct{}
	totals     map[string]int
}

func NewQuestionIndex(questions ...models.Question) *QuestionIndex {
	idx := &QuestionIndex{
		categoryOf: make(map[string]map[string]struct{}),
		totals:     make(map[string]int),
	}
	idx.Add(questions...)
	return idx
}

// Add indexes more questions. A question id already indexed under the same
// category is not counted twice.
func (idx *QuestionIndex) Add(questions ...models.Question) {
	for _, q := range questions {
		cats, ok := idx.categoryOf[q.ID]
		if !ok {
			cats = make(map[string]struct{})
			idx.categoryOf[q.ID] = cats
		}
		if _, seen := cats[q.CategoryID]; seen {
			continue
		}
		cats[q.CategoryID] = struct{}{}
		idx.totals[q.CategoryID]++
	}
}

func (idx *QuestionIndex) Belongs(questionID, categoryID string) bool {
	_, ok := idx.categoryOf[questionID][categoryID]
	return ok
}

func (idx *QuestionIndex) Total(categoryID string) int {
	return idx.totals[categoryID]
}

func OverallStats(events []models.AnswerEvent) models.OverallStats {
	correct := countCorrect(events)
	return models.OverallStats{
		Completed:   len(events),
		Correct:     correct,
		AccuracyPct: models.Percentage(correct, len(events)),
	}
}

func CategoryStats(events []models.AnswerEvent, category models.Category, membership Membership) models.CategoryStats {
	var matched []models.AnswerEvent
	for _, e := range events {
		if membership.Belongs(e.QuestionID, category.ID) {
			matched = append(matched, e)
		}
	}

	total := membership.Total(category.ID)
	completion := models.Percentage(len(matched), total)
	if completion > 100 {
		completion = 100
	}

	correct := countCorrect(matched)
	return models.CategoryStats{
		Category:      category,
		Total:         total,
		Completed:     len(matched),
		Correct:       correct,
		AccuracyPct:   models.Percentage(correct, len(matched)),
		CompletionPct: completion,
	}
}

// RecentActivity returns up to n events, most recent first. Events completed
// at the same instant keep their log order.
func RecentActivity(events []models.AnswerEvent, n int) []models.AnswerEvent {
	if n <= 0 || len(events) == 0 {
		return []models.AnswerEvent{}
	}

	sorted := make([]models.AnswerEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func countCorrect(events []models.AnswerEvent) int {
	n := 0
	for _, e := range events {
		if e.IsCorrect {
			n++
		}
	}
	return n
}
