package expensetest

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/expensectl/pkg/expenses"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "Expense tracker API is running",
		"timestamp": s.timestamp(),
	})
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	includeDeleted := q.Get("includeDeleted") == "true"

	s.mu.Lock()
	matched := s.filterLocked(q, func(e *expenses.Expense) bool {
		return includeDeleted || !e.IsDeleted
	})
	s.mu.Unlock()

	sortExpenses(matched, q.Get("sortBy"), q.Get("sortOrder"))
	writePage(w, matched, q, filtersEcho(q))
}

func (s *Server) listDeleted(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	matched := s.filterLocked(nil, func(e *expenses.Expense) bool { return e.IsDeleted })
	s.mu.Unlock()

	sortExpenses(matched, "deletedAt", "desc")
	writePage(w, matched, q, nil)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	e := *s.insertLocked(in)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, expenses.ExpenseResponse{
		Success: true,
		Message: "Expense created successfully",
		Data:    e,
	})
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	s.withExpense(w, r, func(e *expenses.Expense) (int, string) {
		return http.StatusOK, ""
	})
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	s.withExpense(w, r, func(e *expenses.Expense) (int, string) {
		e.Description = in.Description
		e.Amount = in.Amount
		e.Category = in.Category
		if in.Date != "" {
			e.Date = in.Date
		}
		e.UpdatedAt = s.timestamp()
		return http.StatusOK, "Expense updated successfully"
	})
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	s.withExpense(w, r, func(e *expenses.Expense) (int, string) {
		if e.IsDeleted {
			return http.StatusBadRequest, "Expense is already deleted"
		}
		now := s.timestamp()
		e.IsDeleted = true
		e.DeletedAt = &now
		e.UpdatedAt = now
		return http.StatusOK, "Expense deleted successfully"
	})
}

func (s *Server) restoreExpense(w http.ResponseWriter, r *http.Request) {
	s.withExpense(w, r, func(e *expenses.Expense) (int, string) {
		if !e.IsDeleted {
			return http.StatusBadRequest, "Expense is not deleted"
		}
		e.IsDeleted = false
		e.DeletedAt = nil
		e.UpdatedAt = s.timestamp()
		return http.StatusOK, "Expense restored successfully"
	})
}

func (s *Server) purgeExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	e, ok := s.store[id]
	if ok {
		delete(s.store, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}
	writeJSON(w, http.StatusOK, expenses.ExpenseResponse{
		Success: true,
		Message: "Expense permanently deleted",
		Data:    *e,
	})
}

// withExpense looks up the {id} expense and lets fn mutate it under the lock.
// A non-2xx status from fn is written as an error with msg.
func (s *Server) withExpense(w http.ResponseWriter, r *http.Request, fn func(*expenses.Expense) (int, string)) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	e, ok := s.store[id]
	var status int
	var msg string
	var snapshot expenses.Expense
	if ok {
		status, msg = fn(e)
		snapshot = *e
	}
	s.mu.Unlock()

	switch {
	case !ok:
		writeError(w, http.StatusNotFound, "Expense not found")
	case status >= 300:
		writeError(w, status, msg)
	default:
		writeJSON(w, status, expenses.ExpenseResponse{Success: true, Message: msg, Data: snapshot})
	}
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	matched := s.filterLocked(q, live)
	s.mu.Unlock()

	sum := expenses.AnalyticsSummary{TotalExpenses: len(matched)}
	for i, e := range matched {
		sum.TotalAmount += e.Amount
		if i == 0 || e.Amount < sum.MinAmount {
			sum.MinAmount = e.Amount
		}
		if e.Amount > sum.MaxAmount {
			sum.MaxAmount = e.Amount
		}
	}
	if len(matched) > 0 {
		sum.AverageAmount = round2(sum.TotalAmount / float64(len(matched)))
	}
	sum.TotalAmount = round2(sum.TotalAmount)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    sum,
		"filters": filtersEcho(q),
	})
}

func (s *Server) byCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	matched := s.filterLocked(dateOnly(q), live)
	s.mu.Unlock()

	var grand float64
	groups := make(map[string]*expenses.CategoryBreakdown)
	var names []string
	for _, e := range matched {
		g, ok := groups[e.Category]
		if !ok {
			g = &expenses.CategoryBreakdown{Category: e.Category, MinAmount: e.Amount}
			groups[e.Category] = g
			names = append(names, e.Category)
		}
		g.Count++
		g.TotalAmount += e.Amount
		g.MinAmount = math.Min(g.MinAmount, e.Amount)
		g.MaxAmount = math.Max(g.MaxAmount, e.Amount)
		grand += e.Amount
	}

	data := make([]expenses.CategoryBreakdown, 0, len(names))
	for _, name := range names {
		g := groups[name]
		g.AverageAmount = round2(g.TotalAmount / float64(g.Count))
		if grand > 0 {
			g.Percentage = round2(g.TotalAmount / grand * 100)
		}
		g.TotalAmount = round2(g.TotalAmount)
		data = append(data, *g)
	}
	sort.SliceStable(data, func(i, j int) bool { return data[i].TotalAmount > data[j].TotalAmount })

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"summary": map[string]any{
			"totalCategories": len(data),
			"totalAmount":     round2(grand),
		},
	})
}

type bucket struct {
	Period      string  `json:"period"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int     `json:"count"`
}

func (s *Server) byPeriod(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period := q.Get("period")
	if period == "" {
		period = string(expenses.Monthly)
	}

	s.mu.Lock()
	matched := s.filterLocked(q, live)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"period":  period,
		"data":    buckets(matched, func(t time.Time) string { return periodKey(t, period) }),
	})
}

func (s *Server) trends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	matched := s.filterLocked(dateOnly(q), live)
	s.mu.Unlock()

	months := buckets(matched, func(t time.Time) string { return t.Format("2006-01") })
	type trend struct {
		bucket
		Change float64 `json:"change"`
	}
	data := make([]trend, len(months))
	for i, m := range months {
		data[i] = trend{bucket: m}
		if i > 0 && months[i-1].TotalAmount > 0 {
			prev := months[i-1].TotalAmount
			data[i].Change = round2((m.TotalAmount - prev) / prev * 100)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, expenses.CategoriesResponse{Success: true, Data: DefaultCategories})
}

func (s *Server) exportJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	matched := s.filterLocked(q, live)
	s.mu.Unlock()

	sortExpenses(matched, "date", "desc")
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"count":      len(matched),
		"exportDate": s.timestamp(),
		"data":       matched,
	})
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	matched := s.filterLocked(q, live)
	s.mu.Unlock()

	sortExpenses(matched, "date", "desc")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"ID", "Description", "Amount", "Category", "Date"})
	for _, e := range matched {
		_ = cw.Write([]string{
			e.ID,
			e.Description,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Category,
			e.Date,
		})
	}
	cw.Flush()
}

func live(e *expenses.Expense) bool { return !e.IsDeleted }

// filterLocked applies the common query filters; q may be nil.
func (s *Server) filterLocked(q map[string][]string, keep func(*expenses.Expense) bool) []expenses.Expense {
	get := func(k string) string {
		if v := q[k]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	category := get("category")
	search := strings.ToLower(get("search"))
	start, end := get("startDate"), get("endDate")
	minAmount, hasMin := parseFloat(get("minAmount"))
	maxAmount, hasMax := parseFloat(get("maxAmount"))

	var out []expenses.Expense
	for _, id := range s.order {
		e := s.store[id]
		switch {
		case !keep(e):
		case category != "" && e.Category != category:
		case search != "" && !strings.Contains(strings.ToLower(e.Description), search):
		case start != "" && day(e.Date) < start:
		case end != "" && day(e.Date) > end:
		case hasMin && e.Amount < minAmount:
		case hasMax && e.Amount > maxAmount:
		default:
			out = append(out, *e)
		}
	}
	return out
}

func writePage(w http.ResponseWriter, all []expenses.Expense, q map[string][]string, filters map[string]string) {
	page := atoiDefault(first(q, "page"), defaultPage)
	limit := atoiDefault(first(q, "limit"), defaultLimit)

	total := len(all)
	from := min((page-1)*limit, total)
	to := min(from+limit, total)

	resp := map[string]any{
		"success": true,
		"data":    nonNil(all[from:to]),
		"pagination": expenses.Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}
	if len(filters) > 0 {
		resp["filters"] = filters
	}
	writeJSON(w, http.StatusOK, resp)
}

func sortExpenses(list []expenses.Expense, by, order string) {
	key := func(e expenses.Expense) string {
		switch by {
		case "description":
			return strings.ToLower(e.Description)
		case "category":
			return e.Category
		case "createdAt":
			return e.CreatedAt
		case "deletedAt":
			if e.DeletedAt != nil {
				return *e.DeletedAt
			}
			return ""
		default:
			return e.Date
		}
	}
	less := func(a, b expenses.Expense) bool {
		if by == "amount" {
			return a.Amount < b.Amount
		}
		return key(a) < key(b)
	}
	desc := order != "asc"
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}

func buckets(list []expenses.Expense, keyOf func(time.Time) string) []bucket {
	index := make(map[string]int)
	var out []bucket
	for _, e := range list {
		t, err := expenses.ParseTime(e.Date)
		if err != nil {
			continue
		}
		k := keyOf(t)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, bucket{Period: k})
		}
		out[i].TotalAmount = round2(out[i].TotalAmount + e.Amount)
		out[i].Count++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	if out == nil {
		out = []bucket{}
	}
	return out
}

func periodKey(t time.Time, period string) string {
	switch expenses.Period(period) {
	case expenses.Daily:
		return t.Format(time.DateOnly)
	case expenses.Weekly:
		y, w := t.ISOWeek()
		return strconv.Itoa(y) + "-W" + twoDigits(w)
	case expenses.Yearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

func filtersEcho(q map[string][]string) map[string]string {
	out := make(map[string]string)
	for k, v := range q {
		if len(v) > 0 && k != "page" && k != "limit" {
			out[k] = v[0]
		}
	}
	return out
}

func dateOnly(q map[string][]string) map[string][]string {
	return map[string][]string{"startDate": q["startDate"], "endDate": q["endDate"]}
}

func decodeInput(w http.ResponseWriter, r *http.Request) (expenses.ExpenseInput, bool) {
	var in expenses.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return in, false
	}
	if strings.TrimSpace(in.Description) == "" || in.Category == "" || in.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Description, positive amount and category are required")
		return in, false
	}
	return in, true
}

func first(q map[string][]string, k string) string {
	if v := q[k]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return def
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func day(date string) string {
	if len(date) >= 10 {
		return date[:10]
	}
	return date
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func nonNil(list []expenses.Expense) []expenses.Expense {
	if list == nil {
		return []expenses.Expense{}
	}
	return list
}
