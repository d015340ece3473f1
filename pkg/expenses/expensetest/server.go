// Package expensetest provides an in-memory expense tracker API for tests.
//
// [Server] speaks the same routes and JSON shapes as the real service,
// including soft delete, restore, pagination, analytics and exports. It
// records every request so tests can assert exact URLs and bodies.
//
//	srv := expensetest.NewServer()
//	defer srv.Close()
//
//	client := srv.APIClient()
//	resp, err := client.CreateExpense(ctx, expenses.ExpenseInput{...})
//	last := srv.LastRequest() // "POST /expenses/add"
package expensetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ledgerline/expensectl/pkg/expenses"
)

// timeLayout matches the millisecond ISO timestamps of the real service.
const timeLayout = "2006-01-02T15:04:05.000Z"

// DefaultCategories is what GET /analytics/categories returns.
var DefaultCategories = []expenses.Category{
	{Name: "food", Description: "Groceries, restaurants and snacks"},
	{Name: "transport", Description: "Fuel, tickets and rides"},
	{Name: "entertainment", Description: "Movies, games and events"},
	{Name: "utilities", Description: "Electricity, water and internet"},
	{Name: "healthcare", Description: "Medicine and doctor visits"},
	{Name: "shopping", Description: "Clothes and household items"},
	{Name: "education", Description: "Courses and books"},
	{Name: "other", Description: "Everything else"},
}

// Request is one recorded request.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Body     []byte
}

// URI returns the path with its query string, as sent.
func (r Request) URI() string {
	if r.RawQuery == "" {
		return r.Path
	}
	return r.Path + "?" + r.RawQuery
}

// Server is an httptest server backed by an in-memory expense store.
// It is safe for concurrent use.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	store      map[string]*expenses.Expense
	order      []string
	requests   []Request
	failStatus int

	// Now supplies timestamps; tests may replace it before issuing requests.
	Now func() time.Time
}

// NewServer starts a server with an empty store.
func NewServer() *Server {
	s := &Server{
		store: make(map[string]*expenses.Expense),
		Now:   time.Now,
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// APIClient returns an expenses.Client pointed at the server.
func (s *Server) APIClient() *expenses.Client {
	return expenses.NewClient(s.URL, s.Client())
}

// Seed stores expenses directly, bypassing HTTP, and returns them in order.
func (s *Server) Seed(inputs ...expenses.ExpenseInput) []expenses.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]expenses.Expense, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, *s.insertLocked(in))
	}
	return out
}

// Expense returns a stored expense, including soft-deleted ones.
func (s *Server) Expense(id string) (expenses.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.store[id]
	if !ok {
		return expenses.Expense{}, false
	}
	return *e, true
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or the zero Request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// FailWith makes every following request answer status with an error body.
// Pass 0 to go back to normal behaviour.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Get("/health", s.health)

	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", s.listExpenses)
		r.Post("/add", s.createExpense)
		r.Get("/deleted/list", s.listDeleted)
		r.Get("/{id}", s.getExpense)
		r.Put("/{id}", s.updateExpense)
		r.Delete("/{id}", s.deleteExpense)
		r.Put("/{id}/restore", s.restoreExpense)
		r.Delete("/{id}/permanent", s.purgeExpense)
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/summary", s.summary)
		r.Get("/by-category", s.byCategory)
		r.Get("/by-period", s.byPeriod)
		r.Get("/trends", s.trends)
		r.Get("/categories", s.categories)
	})

	r.Route("/export", func(r chi.Router) {
		r.Get("/json", s.exportJSON)
		r.Get("/csv", s.exportCSV)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	return r
}

// record captures the request and applies FailWith.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Body:     body,
		})
		status := s.failStatus
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) insertLocked(in expenses.ExpenseInput) *expenses.Expense {
	now := s.Now().UTC()
	date := in.Date
	if date == "" {
		date = now.Format(timeLayout)
	}
	e := &expenses.Expense{
		ID:          uuid.NewString(),
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        date,
		CreatedAt:   now.Format(timeLayout),
		UpdatedAt:   now.Format(timeLayout),
	}
	s.store[e.ID] = e
	s.order = append(s.order, e.ID)
	return e
}

func (s *Server) timestamp() string {
	return s.Now().UTC().Format(timeLayout)
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Success: false, Message: msg})
}
