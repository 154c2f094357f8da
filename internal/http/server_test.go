package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tallyhttp "github.com/tallyup/tallyup/internal/http"
	"github.com/tallyup/tallyup/internal/service"
	"github.com/tallyup/tallyup/internal/storage/sqlite"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	server := tallyhttp.NewServer(
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewLedgerService(store),
		service.NewFinanceService(store),
	)
	ts := httptest.NewServer(server.Router([]string{"*"}))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createGroup(t *testing.T, ts *httptest.Server, name, createdBy string, members []string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/groups", map[string]any{
		"name": name, "created_by": createdBy, "members": members,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	group := decodeBody[map[string]any](t, resp)
	return group["id"].(string)
}

func TestHealthz(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGroupLifecycle(t *testing.T) {
	ts := setupTestServer(t)

	groupID := createGroup(t, ts, "Flat 4B", "alice", []string{"bob"})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/groups/"+groupID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	group := decodeBody[struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}](t, resp)
	assert.Equal(t, "Flat 4B", group.Name)
	assert.ElementsMatch(t, []string{"alice", "bob"}, group.Members)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/groups/"+groupID+"/members", map[string]any{"member": "carol"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/groups/"+groupID+"/members/carol", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/groups/"+groupID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/groups/"+groupID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExpenseToSettlementFlow(t *testing.T) {
	ts := setupTestServer(t)
	groupID := createGroup(t, ts, "Trip", "alice", []string{"bob", "carol"})
	base := ts.URL + "/api/v1/groups/" + groupID

	resp := doJSON(t, http.MethodPost, base+"/transactions", map[string]any{
		"description":  "Hotel",
		"amount":       300,
		"paid_by":      "alice",
		"participants": []string{"alice", "bob", "carol"},
		"split_method": "equal",
		"created_by":   "alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/balances", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balances := decodeBody[struct {
		Balances map[string]float64 `json:"balances"`
	}](t, resp)
	assert.InDelta(t, 200, balances.Balances["alice"], 0.01)
	assert.InDelta(t, -100, balances.Balances["bob"], 0.01)
	assert.InDelta(t, -100, balances.Balances["carol"], 0.01)

	resp = doJSON(t, http.MethodGet, base+"/settlements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settlements := decodeBody[struct {
		Settlements []struct {
			From   string  `json:"from"`
			To     string  `json:"to"`
			Amount float64 `json:"amount"`
		} `json:"settlements"`
	}](t, resp)
	require.Len(t, settlements.Settlements, 2)
	for _, s := range settlements.Settlements {
		assert.Equal(t, "alice", s.To)
		assert.InDelta(t, 100, s.Amount, 0.01)
	}

	// Settle up via recorded payments; the payment's payer is the creditor
	// collecting the cash, so the group drops to zero.
	for _, s := range settlements.Settlements {
		resp = doJSON(t, http.MethodPost, base+"/payments", map[string]any{
			"from": s.To, "to": s.From, "amount": s.Amount,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, base+"/settlements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settled := decodeBody[struct {
		Settlements []any `json:"settlements"`
	}](t, resp)
	assert.Empty(t, settled.Settlements)
}

func TestSplitMismatchRejected(t *testing.T) {
	ts := setupTestServer(t)
	groupID := createGroup(t, ts, "Dinner", "alice", []string{"bob"})
	base := ts.URL + "/api/v1/groups/" + groupID

	resp := doJSON(t, http.MethodPost, base+"/transactions", map[string]any{
		"description":  "Broken",
		"amount":       100,
		"paid_by":      "alice",
		"participants": []string{"alice", "bob"},
		"split_method": "exact",
		"exact_shares": map[string]float64{"alice": 60, "bob": 35},
		"created_by":   "alice",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}](t, resp)
	assert.Equal(t, "split_mismatch", body.Kind)
	assert.Contains(t, body.Error, "95.00")
	assert.Contains(t, body.Error, "100.00")

	// Nothing was stored.
	resp = doJSON(t, http.MethodGet, base+"/transactions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txs := decodeBody[[]any](t, resp)
	assert.Empty(t, txs)
}

func TestPaymentImmutable(t *testing.T) {
	ts := setupTestServer(t)
	groupID := createGroup(t, ts, "Flat", "alice", []string{"bob"})
	base := ts.URL + "/api/v1/groups/" + groupID

	resp := doJSON(t, http.MethodPost, base+"/payments", map[string]any{
		"from": "alice", "to": "bob", "amount": 42.5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	payment := decodeBody[struct {
		ID   string `json:"id"`
		Kind string `json:"kind"`
	}](t, resp)
	assert.Equal(t, "payment", payment.Kind)

	resp = doJSON(t, http.MethodPatch, fmt.Sprintf("%s/transactions/%s", base, payment.ID), map[string]any{
		"amount":       99,
		"paid_by":      "alice",
		"participants": []string{"bob"},
		"split_method": "exact",
		"exact_shares": map[string]float64{"bob": 99},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/transactions/%s", base, payment.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestFinanceEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	base := ts.URL + "/api/v1/finance"

	resp := doJSON(t, http.MethodPost, base+"/incomes", map[string]any{
		"user_id": "alice", "source": "Salary", "amount": 5000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, base+"/expenses", map[string]any{
		"user_id": "alice", "category": "Food", "amount": 350, "description": "Groceries",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, base+"/bills", map[string]any{
		"user_id": "alice", "name": "Rent", "amount": 1200, "due_date": "2026-10-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	bill := decodeBody[struct {
		ID string `json:"id"`
	}](t, resp)

	resp = doJSON(t, http.MethodGet, base+"/summary?user=alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeBody[struct {
		TotalIncome   float64 `json:"total_income"`
		TotalExpenses float64 `json:"total_expenses"`
		Net           float64 `json:"net"`
		UnpaidBills   int     `json:"unpaid_bills"`
		UnpaidAmount  float64 `json:"unpaid_amount"`
	}](t, resp)
	assert.InDelta(t, 5000, summary.TotalIncome, 0.01)
	assert.InDelta(t, 350, summary.TotalExpenses, 0.01)
	assert.InDelta(t, 4650, summary.Net, 0.01)
	assert.Equal(t, 1, summary.UnpaidBills)
	assert.InDelta(t, 1200, summary.UnpaidAmount, 0.01)

	resp = doJSON(t, http.MethodPatch, base+"/bills/"+bill.ID+"/paid", map[string]any{
		"user_id": "alice", "paid": true,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/summary?user=alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary = decodeBody[struct {
		TotalIncome   float64 `json:"total_income"`
		TotalExpenses float64 `json:"total_expenses"`
		Net           float64 `json:"net"`
		UnpaidBills   int     `json:"unpaid_bills"`
		UnpaidAmount  float64 `json:"unpaid_amount"`
	}](t, resp)
	assert.Equal(t, 0, summary.UnpaidBills)

	resp = doJSON(t, http.MethodGet, base+"/incomes", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "user query parameter is required")
}
