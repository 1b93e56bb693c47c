package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// DBTX is the subset of pgxpool.Pool, pgx.Conn and pgx.Tx used by Queries.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries holds the raw SQL for the categories and questions tables.
type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to tx.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

const listCategories = `
SELECT id, type
FROM categories
ORDER BY id
`

func (q *Queries) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []trivia.Category{}
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const getCategory = `
SELECT id, type
FROM categories
WHERE id = $1
`

func (q *Queries) GetCategory(ctx context.Context, id int) (trivia.Category, error) {
	var c trivia.Category
	err := q.db.QueryRow(ctx, getCategory, id).Scan(&c.ID, &c.Type)
	return c, err
}

const listQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
ORDER BY id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	return q.queryQuestions(ctx, listQuestions)
}

const listQuestionsByCategory = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE category = $1
ORDER BY id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	return q.queryQuestions(ctx, listQuestionsByCategory, categoryID)
}

// Wildcards in the term are passed through to ILIKE on purpose.
const searchQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE question ILIKE '%' || $1 || '%'
ORDER BY id
`

func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	return q.queryQuestions(ctx, searchQuestions, term)
}

const countQuestions = `
SELECT count(*)
FROM questions
`

func (q *Queries) CountQuestions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countQuestions).Scan(&n)
	return n, err
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, category, difficulty
`

func (q *Queries) InsertQuestion(ctx context.Context, arg trivia.NewQuestion) (trivia.Question, error) {
	var out trivia.Question
	err := q.db.QueryRow(ctx, insertQuestion,
		arg.Question,
		arg.Answer,
		arg.Category,
		arg.Difficulty,
	).Scan(&out.ID, &out.Question, &out.Answer, &out.Category, &out.Difficulty)
	return out, err
}

const deleteQuestion = `
DELETE FROM questions
WHERE id = $1
`

// DeleteQuestion returns the number of rows removed.
func (q *Queries) DeleteQuestion(ctx context.Context, id int) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (q *Queries) queryQuestions(ctx context.Context, sql string, args ...interface{}) ([]trivia.Question, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []trivia.Question{}
	for rows.Next() {
		var item trivia.Question
		if err := rows.Scan(
			&item.ID,
			&item.Question,
			&item.Answer,
			&item.Category,
			&item.Difficulty,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
