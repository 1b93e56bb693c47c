package trivia

import (
	"errors"
	"net/http"
)

// Store error classes. Implementations wrap these with %w.
var (
	ErrNotFound    = errors.New("trivia: not found")
	ErrConstraint  = errors.New("trivia: constraint violation")
	ErrUnavailable = errors.New("trivia: store unavailable")

	// ErrEmptyPage reports a listing whose requested page has no rows.
	ErrEmptyPage = errors.New("trivia: empty page")
)

// Kind is the outcome class used to pick a status code.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyPage
	KindNotFound
	KindConstraint
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindEmptyPage:
		return "empty_page"
	case KindNotFound:
		return "not_found"
	case KindConstraint:
		return "constraint"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// KindOf classifies err against the trivia sentinels.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrEmptyPage):
		return KindEmptyPage
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConstraint):
		return KindConstraint
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// Route names a handler in the status table and in logs.
type Route string

const (
	RouteListCategories    Route = "list_categories"
	RouteListQuestions     Route = "list_questions"
	RouteCategoryQuestions Route = "category_questions"
	RouteSearchQuestions   Route = "search_questions"
	RouteCreateQuestion    Route = "create_question"
	RouteDeleteQuestion    Route = "delete_question"
)

// statusTable maps outcome kinds to a status. KindUnknown is the fallback
// for kinds the table does not list.
type statusTable map[Kind]int

// Empty listings answer 405 and lookup failures 404 on the read routes.
// Writes collapse every failure into a single code per route.
var statusByRoute = map[Route]statusTable{
	RouteListCategories: {
		KindEmptyPage: http.StatusMethodNotAllowed,
		KindUnknown:   http.StatusNotFound,
	},
	RouteListQuestions: {
		KindEmptyPage: http.StatusMethodNotAllowed,
		KindUnknown:   http.StatusNotFound,
	},
	RouteCategoryQuestions: {
		KindEmptyPage: http.StatusMethodNotAllowed,
		KindNotFound:  http.StatusNotFound,
		KindUnknown:   http.StatusNotFound,
	},
	RouteSearchQuestions: {
		KindUnknown: http.StatusMethodNotAllowed,
	},
	RouteCreateQuestion: {
		KindUnknown: http.StatusMethodNotAllowed,
	},
	RouteDeleteQuestion: {
		KindNotFound: http.StatusUnprocessableEntity,
		KindUnknown:  http.StatusUnprocessableEntity,
	},
}

// StatusFor returns the status code route answers for err.
func StatusFor(route Route, err error) int {
	table, ok := statusByRoute[route]
	if !ok {
		return http.StatusInternalServerError
	}
	if status, ok := table[KindOf(err)]; ok {
		return status
	}
	if status, ok := table[KindUnknown]; ok {
		return status
	}
	return http.StatusInternalServerError
}
