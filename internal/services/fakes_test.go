package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"signquiz-backend/internal/models"
	"signquiz-backend/internal/quiz"
)

type fakeCategories struct {
	categories []models.Category
	err        error
}

func (f *fakeCategories) List(ctx context.Context) ([]models.Category, error) {
	return f.categories, f.err
}

type fakeQuestions struct {
	byCategory map[string][]models.Question
	err        error
	onList     func()
}

func (f *fakeQuestions) ListByCategory(ctx context.Context, categoryID string) ([]models.Question, error) {
	if f.onList != nil {
		f.onList()
	}
	return f.byCategory[categoryID], f.err
}

type fakeProgress struct {
	events []models.AnswerEvent
	err    error
}

func (f *fakeProgress) ListByUser(ctx context.Context, userID string) ([]models.AnswerEvent, error) {
	return f.events, f.err
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []models.ProgressJob
	err  error
}

func (f *fakeQueue) Push(ctx context.Context, job models.ProgressJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

// memorySessionStore round-trips sessions through JSON like the Redis store.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID][]byte
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[uuid.UUID][]byte)}
}

func (m *memorySessionStore) Create(ctx context.Context, s *quiz.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; ok {
		return errors.New("exists")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.sessions[s.ID] = data
	return nil
}

func (m *memorySessionStore) Get(ctx context.Context, id uuid.UUID) (*quiz.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(data)
}

func (m *memorySessionStore) Update(ctx context.Context, id uuid.UUID, fn func(*quiz.Session) error) (*quiz.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s, err := decodeSession(data)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	out, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = out
	return s, nil
}

func (m *memorySessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}
