// Package fallback holds the demo content served whenever the database
// cannot be reached.
package fallback

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"signquiz-backend/internal/models"
)

//go:embed demo.yaml
var demoYAML []byte

type progressEntry struct {
	ID             string `yaml:"id"`
	QuestionID     string `yaml:"question_id"`
	SelectedAnswer string `yaml:"selected_answer"`
	IsCorrect      bool   `yaml:"is_correct"`
	Age            string `yaml:"age"`
}

// Content is a parsed demo data set. Its accessors return fresh copies, so
// callers may modify what they receive.
type Content struct {
	categories       []models.Category
	questions        map[string][]models.Question
	defaultQuestions []models.Question
	progress         []progressEntry
	ages             []time.Duration
}

type document struct {
	Categories       []models.Category            `yaml:"categories"`
	Questions        map[string][]models.Question `yaml:"questions"`
	DefaultQuestions []models.Question            `yaml:"default_questions"`
	Progress         []progressEntry              `yaml:"progress"`
}

// Demo returns the content compiled into the binary.
func Demo() *Content {
	c, err := Parse(demoYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded demo content is invalid: %v", err))
	}
	return c
}

// Load reads a content file; an empty path means the embedded demo set.
func Load(path string) (*Content, error) {
	if path == "" {
		return Demo(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback content: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Content, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fallback content: %w", err)
	}
	if len(doc.DefaultQuestions) == 0 {
		return nil, fmt.Errorf("fallback content needs at least one default question")
	}

	ages := make([]time.Duration, len(doc.Progress))
	for i, p := range doc.Progress {
		if p.Age == "" {
			continue
		}
		d, err := time.ParseDuration(p.Age)
		if err != nil {
			return nil, fmt.Errorf("progress entry %q: invalid age: %w", p.ID, err)
		}
		ages[i] = d
	}

	return &Content{
		categories:       doc.Categories,
		questions:        doc.Questions,
		defaultQuestions: doc.DefaultQuestions,
		progress:         doc.Progress,
		ages:             ages,
	}, nil
}

// Categories returns the demo categories ordered by name.
func (c *Content) Categories(now time.Time) []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	for i := range out {
		out[i].CreatedAt = now
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Questions returns the demo set for a category, or the default set for an
// id without one. Every question is stamped with the requested category id.
func (c *Content) Questions(categoryID string, now time.Time) []models.Question {
	src, ok := c.questions[categoryID]
	if !ok {
		src = c.defaultQuestions
	}

	out := make([]models.Question, len(src))
	for i, q := range src {
		q.CategoryID = categoryID
		q.CreatedAt = now
		opts := make([]models.AnswerOption, len(q.Options))
		for j, o := range q.Options {
			o.QuestionID = q.ID
			o.CreatedAt = now
			opts[j] = o
		}
		q.Options = opts
		out[i] = q
	}
	return out
}

// Progress returns the sample log for userID, dated relative to now.
func (c *Content) Progress(userID string, now time.Time) []models.AnswerEvent {
	out := make([]models.AnswerEvent, len(c.progress))
	for i, p := range c.progress {
		out[i] = models.AnswerEvent{
			ID:             p.ID,
			UserID:         userID,
			QuestionID:     p.QuestionID,
			SelectedAnswer: p.SelectedAnswer,
			IsCorrect:      p.IsCorrect,
			CompletedAt:    now.Add(-c.ages[i]),
		}
	}
	return out
}
