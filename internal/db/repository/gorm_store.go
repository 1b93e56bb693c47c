package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Gorm dialects accepted by OpenGorm.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type categoryModel struct {
	ID   int    `gorm:"primaryKey"`
	Type string `gorm:"not null"`
}

func (categoryModel) TableName() string { return "categories" }

type questionModel struct {
	ID         int `gorm:"primaryKey"`
	Question   *string
	Answer     *string
	Category   *int
	Difficulty *int
}

func (questionModel) TableName() string { return "questions" }

func (m questionModel) toDomain() trivia.Question {
	return trivia.Question{
		ID:         m.ID,
		Question:   m.Question,
		Answer:     m.Answer,
		Category:   m.Category,
		Difficulty: m.Difficulty,
	}
}

// OpenGorm connects gorm to the given dialect. Driver logs go to logger at
// warn level.
func OpenGorm(dialect, dsn string, logger zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm dialect %q", dialect)
	}

	gormLog := logger.With().Str("component", "gorm").Logger()
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(&gormLog, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	return db, nil
}

// GormStore implements trivia.Store on top of gorm.
type GormStore struct {
	db *gorm.DB
}

var _ trivia.Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates the categories and questions tables if missing.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&categoryModel{}, &questionModel{})
}

// SeedCategories inserts categories with their ids as given.
func (s *GormStore) SeedCategories(ctx context.Context, categories []trivia.Category) error {
	rows := make([]categoryModel, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, categoryModel{ID: c.ID, Type: c.Type})
	}
	if len(rows) == 0 {
		return nil
	}
	return classify(s.db.WithContext(ctx).Create(&rows).Error)
}

func (s *GormStore) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	var rows []categoryModel
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	items := make([]trivia.Category, 0, len(rows))
	for _, row := range rows {
		items = append(items, trivia.Category{ID: row.ID, Type: row.Type})
	}
	return items, nil
}

func (s *GormStore) GetCategory(ctx context.Context, id int) (trivia.Category, error) {
	var row categoryModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return trivia.Category{}, classify(err)
	}
	return trivia.Category{ID: row.ID, Type: row.Type}, nil
}

func (s *GormStore) ListQuestions(ctx context.Context) ([]trivia.Question, error) {
	return s.findQuestions(s.db.WithContext(ctx))
}

func (s *GormStore) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	return s.findQuestions(s.db.WithContext(ctx).Where("category = ?", categoryID))
}

// SearchQuestions uses ILIKE on postgres. SQLite's LIKE is already
// case-insensitive for ASCII.
func (s *GormStore) SearchQuestions(ctx context.Context, term string) ([]trivia.Question, error) {
	op := "LIKE"
	if s.db.Dialector.Name() == DialectPostgres {
		op = "ILIKE"
	}
	return s.findQuestions(s.db.WithContext(ctx).Where("question "+op+" ?", "%"+term+"%"))
}

func (s *GormStore) CountQuestions(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&questionModel{}).Count(&n).Error; err != nil {
		return 0, classify(err)
	}
	return int(n), nil
}

func (s *GormStore) CreateQuestion(ctx context.Context, q trivia.NewQuestion) (trivia.Question, error) {
	row := questionModel{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return trivia.Question{}, classify(err)
	}
	return row.toDomain(), nil
}

func (s *GormStore) DeleteQuestion(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&questionModel{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("question %d: %w", id, trivia.ErrNotFound)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return classify(err)
	}
	return classify(sqlDB.PingContext(ctx))
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) findQuestions(tx *gorm.DB) ([]trivia.Question, error) {
	var rows []questionModel
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	items := make([]trivia.Question, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}
