package trivia

import "context"

// Store is the data-access handle injected into the HTTP handlers. Every
// listing is ordered by id ascending. Implementations classify failures
// with ErrNotFound, ErrConstraint and ErrUnavailable.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	// GetCategory returns ErrNotFound when no category has the id.
	GetCategory(ctx context.Context, id int) (Category, error)

	ListQuestions(ctx context.Context) ([]Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error)
	// SearchQuestions matches term as a case-insensitive substring of the
	// question text. LIKE wildcards in term are not escaped.
	SearchQuestions(ctx context.Context, term string) ([]Question, error)
	CountQuestions(ctx context.Context) (int, error)

	CreateQuestion(ctx context.Context, q NewQuestion) (Question, error)
	// DeleteQuestion returns ErrNotFound when no question has the id.
	DeleteQuestion(ctx context.Context, id int) error

	Ping(ctx context.Context) error
}
