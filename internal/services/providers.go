package services

import (
	"context"
	"log"
	"time"

	"signquiz-backend/internal/fallback"
	"signquiz-backend/internal/models"
)

// Repository views the providers read from. A nil repository means the
// database was unreachable at startup; the provider then serves fallback
// content only.
type (
	CategoryLister interface {
		List(ctx context.Context) ([]models.Category, error)
	}

	QuestionLister interface {
		ListByCategory(ctx context.Context, categoryID string) ([]models.Question, error)
	}

	ProgressReader interface {
		ListByUser(ctx context.Context, userID string) ([]models.AnswerEvent, error)
	}
)

// CatalogProvider lists quiz categories ordered by name.
type CatalogProvider struct {
	repo    CategoryLister
	content *fallback.Content
	now     func() time.Time
}

func NewCatalogProvider(repo CategoryLister, content *fallback.Content) *CatalogProvider {
	return &CatalogProvider{repo: repo, content: content, now: time.Now}
}

// ListCategories never fails. The boolean reports whether fallback content
// was served.
func (p *CatalogProvider) ListCategories(ctx context.Context) ([]models.Category, bool) {
	if p.repo == nil {
		return p.content.Categories(p.now().UTC()), true
	}

	categories, err := p.repo.List(ctx)
	if err != nil {
		log.Printf("Error fetching categories, serving fallback: %v", err)
		return p.content.Categories(p.now().UTC()), true
	}
	return categories, false
}

// QuestionBank lists a category's questions with their answer options.
type QuestionBank struct {
	repo    QuestionLister
	content *fallback.Content
	now     func() time.Time
}

func NewQuestionBank(repo QuestionLister, content *fallback.Content) *QuestionBank {
	return &QuestionBank{repo: repo, content: content, now: time.Now}
}

// ListQuestions never fails. An empty but successful result is returned as
// is so callers can show an empty state.
func (b *QuestionBank) ListQuestions(ctx context.Context, categoryID string) ([]models.Question, bool) {
	if b.repo == nil {
		return b.content.Questions(categoryID, b.now().UTC()), true
	}

	questions, err := b.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		log.Printf("Error fetching questions for category %q, serving fallback: %v", categoryID, err)
		return b.content.Questions(categoryID, b.now().UTC()), true
	}
	return questions, false
}
