//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/db"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// newPostgresRepository migrates the database named by INTEGRATION_PG_DSN and
// returns a repository bound to a transaction that is rolled back on cleanup.
func newPostgresRepository(t *testing.T) *TriviaRepository {
	t.Helper()
	dsn := envOrDefault("INTEGRATION_PG_DSN", "host=localhost port=5432 user=postgres password=postgres dbname=trivia_test sslmode=disable")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	sqlDB, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, sqlDB, db.CommandUp, ""))
	require.NoError(t, sqlDB.Close())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return NewTriviaRepository(NewQueries(pool).WithTx(tx), pool)
}

func TestPostgres_SeededCategories(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 6)
	assert.Equal(t, trivia.Category{ID: 1, Type: "Science"}, categories[0])

	_, err = repo.GetCategory(ctx, 0)
	assert.ErrorIs(t, err, trivia.ErrNotFound)
}

func TestPostgres_SearchIsCaseInsensitive(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	found, err := repo.SearchQuestions(ctx, "TiTlE")
	require.NoError(t, err)
	require.NotEmpty(t, found)
	for _, q := range found {
		require.NotNil(t, q.Question)
		assert.Contains(t, strings.ToLower(*q.Question), "title")
	}
}

func TestPostgres_CreateAndDelete(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	before, err := repo.CountQuestions(ctx)
	require.NoError(t, err)

	created, err := repo.CreateQuestion(ctx, trivia.NewQuestion{
		Question:   strPtr("La Giaconda is better known as what?"),
		Answer:     strPtr("Mona Lisa"),
		Category:   intPtr(2),
		Difficulty: intPtr(3),
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	byCategory, err := repo.ListQuestionsByCategory(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCategory[len(byCategory)-1].ID)

	require.NoError(t, repo.DeleteQuestion(ctx, created.ID))
	assert.ErrorIs(t, repo.DeleteQuestion(ctx, created.ID), trivia.ErrNotFound)

	after, err := repo.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPostgres_Ping(t *testing.T) {
	repo := newPostgresRepository(t)

	assert.NoError(t, repo.Ping(context.Background()))
}

func TestPostgres_SearchPassesWildcardsThrough(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	all, err := repo.ListQuestions(ctx)
	require.NoError(t, err)

	var ids []int
	for _, text := range []string{"zqabcz", "zqaXcz", "zq100% surez"} {
		created, err := repo.CreateQuestion(ctx, trivia.NewQuestion{Question: strPtr(text)})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	found, err := repo.SearchQuestions(ctx, "zqa_cz")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.SearchQuestions(ctx, "zq%z")
	require.NoError(t, err)
	assert.Len(t, found, 3)

	found, err = repo.SearchQuestions(ctx, "0% s")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ids[2], found[0].ID)

	// "%" alone matches every non-null question.
	found, err = repo.SearchQuestions(ctx, "%")
	require.NoError(t, err)
	assert.Len(t, found, len(all)+3)
}
