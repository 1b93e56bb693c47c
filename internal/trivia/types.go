package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// Category groups questions under a label such as "Science".
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Question is a stored trivia question. Nullable columns map to pointers so
// that absent values serialize as JSON null.
type Question struct {
	ID         int     `json:"id"`
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   *int    `json:"category"`
	Difficulty *int    `json:"difficulty"`
}

// NewQuestion carries the insertable fields of a question. The category is
// not checked against existing categories.
type NewQuestion struct {
	Question   *string
	Answer     *string
	Category   *int
	Difficulty *int
}

// CreateQuestionRequest is the body of POST /questions.
type CreateQuestionRequest struct {
	Question   *string     `json:"question"`
	Answer     *string     `json:"answer"`
	Category   NumberField `json:"category"`
	Difficulty NumberField `json:"difficulty"`
}

// ToNewQuestion converts the request body into insertable fields.
func (r CreateQuestionRequest) ToNewQuestion() NewQuestion {
	return NewQuestion{
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   r.Category.Value,
		Difficulty: r.Difficulty.Value,
	}
}

// SearchRequest is the body of POST /questions/search.
type SearchRequest struct {
	SearchTerm TermField `json:"searchTerm"`
}

// Term returns the search term, or "" when none was sent.
func (r SearchRequest) Term() string {
	return r.SearchTerm.Value
}

// TermField accepts a JSON string, number or boolean as search text.
// Numbers keep their literal spelling. null, false and zero are treated as
// no term. Objects and arrays are rejected with ErrConstraint.
type TermField struct {
	Value string
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TermField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	t.Value = ""
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &t.Value)
	case 'n', 'f':
		return nil
	case 't':
		t.Value = "true"
		return nil
	case '{', '[':
		return fmt.Errorf("%w: search term must be text, got %s", ErrConstraint, data[:1])
	}

	raw := string(data)
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == 0 {
		return nil
	}
	t.Value = raw
	return nil
}

// NumberField accepts a JSON integer, a numeric string or null. Web clients
// commonly submit select-box values such as category ids as strings.
type NumberField struct {
	Value *int
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			n.Value = nil
			return nil
		}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrConstraint, raw)
	}
	n.Value = &v
	return nil
}
