package repository

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type triviaStore interface {
	ListCategories(ctx context.Context) ([]trivia.Category, error)
	GetCategory(ctx context.Context, id int) (trivia.Category, error)
	ListQuestions(ctx context.Context) ([]trivia.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	InsertQuestion(ctx context.Context, arg trivia.NewQuestion) (trivia.Question, error)
	DeleteQuestion(ctx context.Context, id int) (int64, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// TriviaRepository wraps pgx queries for category and question access and
// classifies driver errors for the HTTP layer.
type TriviaRepository struct {
	store triviaStore
	db    pinger
}

var _ trivia.Store = (*TriviaRepository)(nil)

// NewTriviaRepository builds a repository over store. db may be nil, in
// which case Ping always succeeds.
func NewTriviaRepository(store triviaStore, db pinger) *TriviaRepository {
	return &TriviaRepository{store: store, db: db}
}

func (r *TriviaRepository) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	items, err := r.store.ListCategories(ctx)
	return items, classify(err)
}

func (r *TriviaRepository) GetCategory(ctx context.Context, id int) (trivia.Category, error) {
	c, err := r.store.GetCategory(ctx, id)
	return c, classify(err)
}

func (r *TriviaRepository) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	items, err := r.store.ListQuestions(ctx)
	return items, classify(err)
}

func (r *TriviaRepository) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	items, err := r.store.ListQuestionsByCategory(ctx, categoryID)
	return items, classify(err)
}

func (r *TriviaRepository) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	items, err := r.store.SearchQuestions(ctx, term)
	return items, classify(err)
}

func (r *TriviaRepository) CountQuestions(ctx context.Context) (int, error) {
	n, err := r.store.CountQuestions(ctx)
	return int(n), classify(err)
}

func (r *TriviaRepository) CreateQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error) {
	created, err := r.store.InsertQuestion(ctx, q)
	return created, classify(err)
}

func (r *TriviaRepository) DeleteQuestion(ctx context.Context, id int) error {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return fmt.Errorf("question %d: %w", id, trivia.ErrNotFound)
	}
	return nil
}

func (r *TriviaRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return classify(r.db.Ping(ctx))
}
