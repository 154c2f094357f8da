package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/service"
)

type transactionResponse struct {
	ID           string             `json:"id"`
	GroupID      string             `json:"group_id"`
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	Participants []string           `json:"participants"`
	SplitMethod  string             `json:"split_method"`
	ExactShares  map[string]float64 `json:"exact_shares,omitempty"`
	Kind         string             `json:"kind"`
	CreatedBy    string             `json:"created_by"`
	CreatedAt    int64              `json:"created_at"`
}

func toTransactionResponse(tx *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		GroupID:      tx.GroupID,
		Description:  tx.Description,
		Amount:       tx.Amount,
		PaidBy:       tx.PaidBy,
		Participants: tx.Participants,
		SplitMethod:  string(tx.SplitMethod),
		ExactShares:  tx.ExactShares,
		Kind:         string(tx.Kind),
		CreatedBy:    tx.CreatedBy,
		CreatedAt:    tx.CreatedAt,
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.expenses.ListTransactions(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toTransactionResponse(tx)
	}
	writeJSON(w, http.StatusOK, resp)
}

type expenseRequest struct {
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	Participants []string           `json:"participants"`
	SplitMethod  string             `json:"split_method"`
	ExactShares  map[string]float64 `json:"exact_shares"`
	CreatedBy    string             `json:"created_by"`
}

func (req *expenseRequest) toParams(groupID string) service.ExpenseParams {
	return service.ExpenseParams{
		GroupID:      groupID,
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		SplitMethod:  models.SplitMethod(req.SplitMethod),
		ExactShares:  req.ExactShares,
		CreatedBy:    req.CreatedBy,
	}
}

func (s *Server) addExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := s.expenses.AddExpense(r.Context(), req.toParams(chi.URLParam(r, "groupID")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := s.expenses.UpdateExpense(r.Context(), chi.URLParam(r, "txID"),
		req.toParams(chi.URLParam(r, "groupID")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteTransaction(r.Context(), chi.URLParam(r, "txID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type paymentRequest struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	CreatedBy string  `json:"created_by"`
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = req.From
	}
	tx, err := s.expenses.RecordPayment(r.Context(), chi.URLParam(r, "groupID"),
		req.From, req.To, req.Amount, createdBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}
