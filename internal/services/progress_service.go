package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"signquiz-backend/internal/models"
	"signquiz-backend/internal/progress"
)

const maxConcurrentCategoryLoads = 4

type Overview struct {
	Overall    models.OverallStats    `json:"overall"`
	Categories []models.CategoryStats `json:"categories"`
	Recent     []models.AnswerEvent   `json:"recent"`
	Fallback   bool                   `json:"fallback"`
}

// ProgressService builds the progress page from the catalog, the question
// bank and the user's answer log.
type ProgressService struct {
	catalog     *CatalogProvider
	bank        *QuestionBank
	store       *ProgressStore
	recentLimit int
}

func NewProgressService(catalog *CatalogProvider, bank *QuestionBank, store *ProgressStore, recentLimit int) *ProgressService {
	return &ProgressService{
		catalog:     catalog,
		bank:        bank,
		store:       store,
		recentLimit: recentLimit,
	}
}

func (s *ProgressService) Overview(ctx context.Context, userID string) (*Overview, error) {
	var (
		categories   []models.Category
		events       []models.AnswerEvent
		catFallback  bool
		progFallback bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, catFallback = s.catalog.ListCategories(gctx)
		return nil
	})
	g.Go(func() error {
		events, progFallback = s.store.ListEvents(gctx, userID)
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	perCategory := make([][]models.Question, len(categories))
	bankFallback := make([]bool, len(categories))

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCategoryLoads)
	for i, c := range categories {
		g.Go(func() error {
			perCategory[i], bankFallback[i] = s.bank.ListQuestions(gctx, c.ID)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index := progress.NewQuestionIndex()
	usedFallback := catFallback || progFallback
	for i := range categories {
		index.Add(perCategory[i]...)
		usedFallback = usedFallback || bankFallback[i]
	}

	stats := make([]models.CategoryStats, 0, len(categories))
	for _, c := range categories {
		stats = append(stats, progress.CategoryStats(events, c, index))
	}

	return &Overview{
		Overall:    progress.OverallStats(events),
		Categories: stats,
		Recent:     progress.RecentActivity(events, s.recentLimit),
		Fallback:   usedFallback,
	}, nil
}

// Recent returns the user's latest answers, newest first.
func (s *ProgressService) Recent(ctx context.Context, userID string, limit int) ([]models.AnswerEvent, bool) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	events, usedFallback := s.store.ListEvents(ctx, userID)
	return progress.RecentActivity(events, limit), usedFallback
}
