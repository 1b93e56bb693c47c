package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

type mockTriviaStore struct {
	mock.Mock
}

func (m *mockTriviaStore) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]trivia.Category), args.Error(1)
}

func (m *mockTriviaStore) GetCategory(ctx context.Context, id int) (trivia.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(trivia.Category), args.Error(1)
}

func (m *mockTriviaStore) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]trivia.Question), args.Error(1)
}

func (m *mockTriviaStore) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]trivia.Question), args.Error(1)
}

func (m *mockTriviaStore) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]trivia.Question), args.Error(1)
}

func (m *mockTriviaStore) CountQuestions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTriviaStore) InsertQuestion(ctx context.Context, arg trivia.NewQuestion) (trivia.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(trivia.Question), args.Error(1)
}

func (m *mockTriviaStore) DeleteQuestion(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func TestTriviaRepository_ListCategories(t *testing.T) {
	store := new(mockTriviaStore)
	repo := NewTriviaRepository(store, nil)

	expect := []trivia.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}
	store.On("ListCategories", mock.Anything).Return(expect, nil)

	got, err := repo.ListCategories(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestTriviaRepository_GetCategoryNotFound(t *testing.T) {
	store := new(mockTriviaStore)
	repo := NewTriviaRepository(store, nil)

	store.On("GetCategory", mock.Anything, 99).Return(trivia.Category{}, pgx.ErrNoRows)

	_, err := repo.GetCategory(context.Background(), 99)

	assert.ErrorIs(t, err, trivia.ErrNotFound)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	store.AssertExpectations(t)
}

func TestTriviaRepository_CountQuestions(t *testing.T) {
	store := new(mockTriviaStore)
	repo := NewTriviaRepository(store, nil)

	store.On("CountQuestions", mock.Anything).Return(int64(19), nil)

	got, err := repo.CountQuestions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 19, got)
}

func TestTriviaRepository_CreateQuestion(t *testing.T) {
	store := new(mockTriviaStore)
	repo := NewTriviaRepository(store, nil)

	arg := trivia.NewQuestion{
		Question:   strPtr("What is the heaviest organ in the human body?"),
		Answer:     strPtr("The Liver"),
		Category:   intPtr(1),
		Difficulty: intPtr(4),
	}
	expect := trivia.Question{ID: 20, Question: arg.Question, Answer: arg.Answer, Category: arg.Category, Difficulty: arg.Difficulty}
	store.On("InsertQuestion", mock.Anything, arg).Return(expect, nil)

	got, err := repo.CreateQuestion(context.Background(), arg)

	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestTriviaRepository_CreateQuestionConstraint(t *testing.T) {
	store := new(mockTriviaStore)
	repo := NewTriviaRepository(store, nil)

	pgErr := &pgconn.PgError{Code: "22003", Message: "integer out of range"}
	store.On("InsertQuestion", mock.Anything, mock.Anything).Return(trivia.Question{}, pgErr)

	_, err := repo.CreateQuestion(context.Background(), trivia.NewQuestion{})

	assert.ErrorIs(t, err, trivia.ErrConstraint)
	var got *pgconn.PgError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "22003", got.Code)
}

func TestTriviaRepository_DeleteQuestion(t *testing.T) {
	store := new(mockTriviaStore)
	repo := NewTriviaRepository(store, nil)

	store.On("DeleteQuestion", mock.Anything, 5).Return(int64(1), nil)
	store.On("DeleteQuestion", mock.Anything, 1000000).Return(int64(0), nil)

	assert.NoError(t, repo.DeleteQuestion(context.Background(), 5))
	assert.ErrorIs(t, repo.DeleteQuestion(context.Background(), 1000000), trivia.ErrNotFound)
	store.AssertExpectations(t)
}

func TestTriviaRepository_DeleteQuestionDriverError(t *testing.T) {
	store := new(mockTriviaStore)
	repo := NewTriviaRepository(store, nil)

	store.On("DeleteQuestion", mock.Anything, 5).Return(int64(0), &pgconn.PgError{Code: "57P01"})

	err := repo.DeleteQuestion(context.Background(), 5)

	assert.ErrorIs(t, err, trivia.ErrUnavailable)
}

func TestTriviaRepository_Ping(t *testing.T) {
	store := new(mockTriviaStore)

	assert.NoError(t, NewTriviaRepository(store, nil).Ping(context.Background()))
	assert.NoError(t, NewTriviaRepository(store, stubPinger{}).Ping(context.Background()))

	err := NewTriviaRepository(store, stubPinger{err: context.DeadlineExceeded}).Ping(context.Background())
	assert.ErrorIs(t, err, trivia.ErrUnavailable)
}

func TestClassify(t *testing.T) {
	plain := errors.New("something odd")

	cases := []struct {
		name string
		err  error
		want trivia.Kind
	}{
		{"no rows", pgx.ErrNoRows, trivia.KindNotFound},
		{"gorm record not found", gorm.ErrRecordNotFound, trivia.KindNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, trivia.KindConstraint},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, trivia.KindConstraint},
		{"unique violation", &pgconn.PgError{Code: "23505"}, trivia.KindConstraint},
		{"invalid text", &pgconn.PgError{Code: "22P02"}, trivia.KindConstraint},
		{"connection failure", &pgconn.PgError{Code: "08006"}, trivia.KindUnavailable},
		{"too many connections", &pgconn.PgError{Code: "53300"}, trivia.KindUnavailable},
		{"syntax error", &pgconn.PgError{Code: "42601"}, trivia.KindUnknown},
		{"canceled", context.Canceled, trivia.KindUnavailable},
		{"plain", plain, trivia.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			assert.ErrorIs(t, got, tc.err)
			assert.Equal(t, tc.want, trivia.KindOf(got))
		})
	}

	assert.NoError(t, classify(nil))
}
