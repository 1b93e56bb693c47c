package trivia

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

var errMalformedBody = errors.New("malformed json body")

// HTTPHandler exposes the category and question endpoints.
type HTTPHandler struct {
	store  Store
	logger zerolog.Logger
}

// NewHTTPHandler constructs a trivia HTTP handler backed by store.
func NewHTTPHandler(store Store, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		store:  store,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Routes registers the trivia endpoints on mux. Known paths hit with an
// unsupported method answer the 405 envelope.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.handleCategories)
	mux.HandleFunc("/categories/{id}/questions", h.handleCategoryQuestions)
	mux.HandleFunc("/questions", h.handleQuestions)
	mux.HandleFunc("/questions/search", h.handleSearch)
	mux.HandleFunc("/questions/{id}", h.handleQuestion)
}

func (h *HTTPHandler) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !isRead(r) {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	h.ListCategories(w, r)
}

func (h *HTTPHandler) handleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathID(r); !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if !isRead(r) {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	h.CategoryQuestions(w, r)
}

func (h *HTTPHandler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	switch {
	case isRead(r):
		h.ListQuestions(w, r)
	case r.Method == http.MethodPost:
		h.CreateQuestion(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

func (h *HTTPHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	h.SearchQuestions(w, r)
}

// handleQuestion serves /questions/{id}. The path only exists for integer
// ids, so a non-numeric segment is an unknown path rather than a wrong method.
func (h *HTTPHandler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathID(r); !ok {
		httperrors.RespondNotFound(w)
		return
	}
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	h.DeleteQuestion(w, r)
}

type categoriesResponse struct {
	Success         bool       `json:"success"`
	Categories      []Category `json:"categories"`
	TotalCategories int        `json:"total_categories"`
}

type questionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	Categories      []Category `json:"categories"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory *Category  `json:"current_category"`
}

type categoryQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory Category   `json:"current_category"`
}

type createdResponse struct {
	Success        bool       `json:"success"`
	Created        int        `json:"created"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type deletedResponse struct {
	Success        bool       `json:"success"`
	Deleted        int        `json:"deleted"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

// ListCategories handles GET /categories
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, RouteListCategories, fmt.Errorf("list categories: %w", err))
		return
	}
	if len(categories) == 0 {
		h.fail(w, r, RouteListCategories, ErrEmptyPage)
		return
	}

	respondJSON(w, http.StatusOK, categoriesResponse{
		Success:         true,
		Categories:      categories,
		TotalCategories: len(categories),
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		h.fail(w, r, RouteListQuestions, fmt.Errorf("list categories: %w", err))
		return
	}

	questions, err := h.store.ListQuestions(ctx)
	if err != nil {
		h.fail(w, r, RouteListQuestions, fmt.Errorf("list questions: %w", err))
		return
	}

	page := Paginate(questions, PageFromQuery(r))
	if len(page) == 0 {
		h.fail(w, r, RouteListQuestions, ErrEmptyPage)
		return
	}

	total, err := h.store.CountQuestions(ctx)
	if err != nil {
		h.fail(w, r, RouteListQuestions, fmt.Errorf("count questions: %w", err))
		return
	}

	respondJSON(w, http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      page,
		Categories:     nonNil(categories),
		TotalQuestions: total,
	})
}

// CategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	ctx := r.Context()

	category, err := h.store.GetCategory(ctx, id)
	if err != nil {
		h.fail(w, r, RouteCategoryQuestions, fmt.Errorf("get category %d: %w", id, err))
		return
	}

	questions, err := h.store.ListQuestionsByCategory(ctx, id)
	if err != nil {
		h.fail(w, r, RouteCategoryQuestions, fmt.Errorf("list questions for category %d: %w", id, err))
		return
	}

	page := Paginate(questions, PageFromQuery(r))
	if len(page) == 0 {
		h.fail(w, r, RouteCategoryQuestions, ErrEmptyPage)
		return
	}

	total, err := h.store.CountQuestions(ctx)
	if err != nil {
		h.fail(w, r, RouteCategoryQuestions, fmt.Errorf("count questions: %w", err))
		return
	}

	respondJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       page,
		TotalQuestions:  total,
		CurrentCategory: category,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(r, &req); err != nil {
		h.decodeFailed(w, r, RouteSearchQuestions, err)
		return
	}
	ctx := r.Context()

	var (
		questions []Question
		err       error
	)
	if term := req.Term(); term != "" {
		questions, err = h.store.SearchQuestions(ctx, term)
	} else {
		questions, err = h.store.ListQuestions(ctx)
	}
	if err != nil {
		h.fail(w, r, RouteSearchQuestions, fmt.Errorf("search questions: %w", err))
		return
	}

	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		h.fail(w, r, RouteSearchQuestions, fmt.Errorf("list categories: %w", err))
		return
	}

	total, err := h.store.CountQuestions(ctx)
	if err != nil {
		h.fail(w, r, RouteSearchQuestions, fmt.Errorf("count questions: %w", err))
		return
	}

	respondJSON(w, http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      Paginate(questions, PageFromQuery(r)),
		Categories:     nonNil(categories),
		TotalQuestions: total,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := decodeBody(r, &req); err != nil {
		h.decodeFailed(w, r, RouteCreateQuestion, err)
		return
	}
	ctx := r.Context()

	created, err := h.store.CreateQuestion(ctx, req.ToNewQuestion())
	if err != nil {
		h.fail(w, r, RouteCreateQuestion, fmt.Errorf("create question: %w", err))
		return
	}

	questions, err := h.store.ListQuestions(ctx)
	if err != nil {
		h.fail(w, r, RouteCreateQuestion, fmt.Errorf("list questions: %w", err))
		return
	}

	total, err := h.store.CountQuestions(ctx)
	if err != nil {
		h.fail(w, r, RouteCreateQuestion, fmt.Errorf("count questions: %w", err))
		return
	}

	h.requestLogger(r).Info().Int("question_id", created.ID).Msg("question created")

	respondJSON(w, http.StatusOK, createdResponse{
		Success:        true,
		Created:        created.ID,
		Questions:      Paginate(questions, PageFromQuery(r)),
		TotalQuestions: total,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	ctx := r.Context()

	if err := h.store.DeleteQuestion(ctx, id); err != nil {
		h.fail(w, r, RouteDeleteQuestion, fmt.Errorf("delete question %d: %w", id, err))
		return
	}

	questions, err := h.store.ListQuestions(ctx)
	if err != nil {
		h.fail(w, r, RouteDeleteQuestion, fmt.Errorf("list questions: %w", err))
		return
	}

	total, err := h.store.CountQuestions(ctx)
	if err != nil {
		h.fail(w, r, RouteDeleteQuestion, fmt.Errorf("count questions: %w", err))
		return
	}

	h.requestLogger(r).Info().Int("question_id", id).Msg("question deleted")

	respondJSON(w, http.StatusOK, deletedResponse{
		Success:        true,
		Deleted:        id,
		Questions:      Paginate(questions, PageFromQuery(r)),
		TotalQuestions: total,
	})
}

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, route Route, err error) {
	status := StatusFor(route, err)
	kind := KindOf(err)

	event := h.requestLogger(r).Warn()
	if kind == KindUnavailable || kind == KindUnknown {
		event = h.requestLogger(r).Error()
	}
	event.Err(err).
		Str("route", string(route)).
		Str("kind", kind.String()).
		Int("status", status).
		Msg("request failed")

	httperrors.RespondError(w, status)
}

func (h *HTTPHandler) decodeFailed(w http.ResponseWriter, r *http.Request, route Route, err error) {
	if errors.Is(err, errMalformedBody) {
		h.requestLogger(r).Warn().Err(err).Str("route", string(route)).Msg("bad request body")
		httperrors.RespondBadRequest(w)
		return
	}
	h.fail(w, r, route, err)
}

func (h *HTTPHandler) requestLogger(r *http.Request) *zerolog.Logger {
	if logger, ok := logging.Lookup(r.Context()); ok {
		logger = logger.With().Str("component", "trivia_http").Logger()
		return &logger
	}
	return &h.logger
}

// decodeBody decodes a JSON body into dst. An empty body leaves dst zeroed.
// Syntax errors wrap errMalformedBody; value errors are returned as-is.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	var syntaxErr *json.SyntaxError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	default:
		return fmt.Errorf("decode body: %w", err)
	}
}

// pathID parses the {id} wildcard as a non-negative decimal integer.
func pathID(r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(id), true
}

func isRead(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

func nonNil(categories []Category) []Category {
	if categories == nil {
		return []Category{}
	}
	return categories
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
