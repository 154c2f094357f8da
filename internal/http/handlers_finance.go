package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tallyup/tallyup/internal/models"
)

type incomeRequest struct {
	UserID string  `json:"user_id"`
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
}

type incomeResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

func toIncomeResponse(in *models.Income) incomeResponse {
	return incomeResponse{ID: in.ID, UserID: in.UserID, Source: in.Source, Amount: in.Amount, Date: in.Date}
}

func (s *Server) addIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	income, err := s.finance.AddIncome(r.Context(), req.UserID, req.Source, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toIncomeResponse(income))
}

func (s *Server) listIncomes(w http.ResponseWriter, r *http.Request) {
	user, ok := requireQuery(w, r, "user")
	if !ok {
		return
	}

	incomes, err := s.finance.ListIncomes(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]incomeResponse, len(incomes))
	for i, income := range incomes {
		resp[i] = toIncomeResponse(income)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteIncome(w http.ResponseWriter, r *http.Request) {
	user, ok := requireQuery(w, r, "user")
	if !ok {
		return
	}
	if err := s.finance.DeleteIncome(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type personalExpenseRequest struct {
	UserID      string  `json:"user_id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type personalExpenseResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        int64   `json:"date"`
}

func toPersonalExpenseResponse(e *models.PersonalExpense) personalExpenseResponse {
	return personalExpenseResponse{
		ID: e.ID, UserID: e.UserID, Category: e.Category,
		Amount: e.Amount, Description: e.Description, Date: e.Date,
	}
}

func (s *Server) addPersonalExpense(w http.ResponseWriter, r *http.Request) {
	var req personalExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := s.finance.AddExpense(r.Context(), req.UserID, req.Category, req.Amount, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPersonalExpenseResponse(expense))
}

func (s *Server) listPersonalExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := requireQuery(w, r, "user")
	if !ok {
		return
	}

	expenses, err := s.finance.ListExpenses(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]personalExpenseResponse, len(expenses))
	for i, expense := range expenses {
		resp[i] = toPersonalExpenseResponse(expense)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deletePersonalExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := requireQuery(w, r, "user")
	if !ok {
		return
	}
	if err := s.finance.DeleteExpense(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type billRequest struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"due_date"` // RFC 3339 or YYYY-MM-DD
	IsRecurring bool    `json:"is_recurring"`
	Category    string  `json:"category"`
}

type billResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	DueDate     int64   `json:"due_date"`
	IsRecurring bool    `json:"is_recurring"`
	Category    string  `json:"category"`
	IsPaid      bool    `json:"is_paid"`
	PaidAt      *int64  `json:"paid_at,omitempty"`
	CreatedAt   int64   `json:"created_at"`
}

func toBillResponse(b *models.Bill) billResponse {
	return billResponse{
		ID: b.ID, UserID: b.UserID, Name: b.Name, Amount: b.Amount,
		DueDate: b.DueDate, IsRecurring: b.IsRecurring, Category: b.Category,
		IsPaid: b.IsPaid, PaidAt: b.PaidAt, CreatedAt: b.CreatedAt,
	}
}

func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

func (s *Server) addBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid due_date: " + err.Error()})
		return
	}

	bill, err := s.finance.AddBill(r.Context(), req.UserID, req.Name, req.Amount, dueDate, req.IsRecurring, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBillResponse(bill))
}

func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	user, ok := requireQuery(w, r, "user")
	if !ok {
		return
	}

	bills, err := s.finance.ListBills(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]billResponse, len(bills))
	for i, bill := range bills {
		resp[i] = toBillResponse(bill)
	}
	writeJSON(w, http.StatusOK, resp)
}

type setBillPaidRequest struct {
	UserID string `json:"user_id"`
	Paid   bool   `json:"paid"`
}

func (s *Server) setBillPaid(w http.ResponseWriter, r *http.Request) {
	var req setBillPaidRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.finance.SetBillPaid(r.Context(), req.UserID, chi.URLParam(r, "id"), req.Paid); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteBill(w http.ResponseWriter, r *http.Request) {
	user, ok := requireQuery(w, r, "user")
	if !ok {
		return
	}
	if err := s.finance.DeleteBill(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type summaryResponse struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Net           float64 `json:"net"`
	UnpaidBills   int     `json:"unpaid_bills"`
	UnpaidAmount  float64 `json:"unpaid_amount"`
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := requireQuery(w, r, "user")
	if !ok {
		return
	}

	summary, err := s.finance.Summarize(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		TotalIncome:   summary.TotalIncome,
		TotalExpenses: summary.TotalExpenses,
		Net:           summary.Net,
		UnpaidBills:   summary.UnpaidBills,
		UnpaidAmount:  summary.UnpaidAmount,
	})
}
