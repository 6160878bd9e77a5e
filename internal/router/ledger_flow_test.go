package router_test

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "ledger/internal/errors"
)

func (app *testApp) createClientAndAccount(t *testing.T, balance int) float64 {
	t.Helper()
	clientID := app.mustCreate(t, "/clients", `{"name":"Ana","email":"ana@test.com"}`)
	return app.mustCreate(t, "/accounts",
		fmt.Sprintf(`{"name":"Savings","balance":%d,"client_id":%.0f}`, balance, clientID))
}

func TestLedgerFlow_ExpenseThenDeleteRestoresBalance(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 10000)

	// Step 1: Expense of 1 takes the balance to 9999
	rec := app.request("POST", "/movements",
		fmt.Sprintf(`{"type":"expense","amount":1,"date":"2024-03-15","account_id":%.0f}`, accountID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	movement := parseJSON(t, rec)
	if movement["date"] != "2024-03-15" {
		t.Errorf("expected date 2024-03-15, got %v", movement["date"])
	}
	if movement["account_id"].(float64) != accountID {
		t.Errorf("expected account_id %.0f, got %v", accountID, movement["account_id"])
	}

	if balance := app.balanceOf(t, accountID); balance != 9999 {
		t.Fatalf("expected balance 9999, got %.0f", balance)
	}

	// Step 2: Deleting the movement restores 10000
	rec = app.request("DELETE", fmt.Sprintf("/movements/%.0f", movement["id"].(float64)), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if balance := app.balanceOf(t, accountID); balance != 10000 {
		t.Errorf("expected balance 10000, got %.0f", balance)
	}

	// Step 3: The movement is gone
	rec = app.request("GET", fmt.Sprintf("/movements/%.0f", movement["id"].(float64)), "")
	expectError(t, rec, http.StatusNotFound, apperrors.ErrMovementNotFound)
}

func TestLedgerFlow_ExpenseOnEmptyAccountRejected(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 0)

	rec := app.request("POST", "/movements",
		fmt.Sprintf(`{"type":"expense","amount":1000,"date":"2024-03-15","account_id":%.0f}`, accountID))
	expectError(t, rec, http.StatusBadRequest, apperrors.ErrInsufficientBalance)

	if balance := app.balanceOf(t, accountID); balance != 0 {
		t.Errorf("expected balance 0, got %.0f", balance)
	}

	rec = app.request("GET", fmt.Sprintf("/accounts/%.0f/movements", accountID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if movements := parseJSONList(t, rec); len(movements) != 0 {
		t.Errorf("expected no movements after rejected expense, got %d", len(movements))
	}
}

func TestLedgerFlow_IncomeDeletedAfterSpendingGoesNegative(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 0)

	income := app.mustCreate(t, "/movements",
		fmt.Sprintf(`{"type":"income","amount":500,"date":"2024-03-01","account_id":%.0f}`, accountID))
	app.mustCreate(t, "/movements",
		fmt.Sprintf(`{"type":"expense","amount":400,"date":"2024-03-02","account_id":%.0f}`, accountID))

	if balance := app.balanceOf(t, accountID); balance != 100 {
		t.Fatalf("expected balance 100, got %.0f", balance)
	}

	rec := app.request("DELETE", fmt.Sprintf("/movements/%.0f", income), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if balance := app.balanceOf(t, accountID); balance != -400 {
		t.Errorf("expected balance -400, got %.0f", balance)
	}
}

func TestLedgerFlow_MovementsListedByDate(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 1000)

	for _, date := range []string{"2024-03-20", "2024-03-01", "2024-03-10"} {
		app.mustCreate(t, "/movements",
			fmt.Sprintf(`{"type":"income","amount":10,"date":%q,"account_id":%.0f}`, date, accountID))
	}

	rec := app.request("GET", fmt.Sprintf("/accounts/%.0f/movements", accountID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	movements := parseJSONList(t, rec)
	if len(movements) != 3 {
		t.Fatalf("expected 3 movements, got %d", len(movements))
	}
	expected := []string{"2024-03-01", "2024-03-10", "2024-03-20"}
	for i, m := range movements {
		if m["date"] != expected[i] {
			t.Errorf("movement %d: expected date %s, got %v", i, expected[i], m["date"])
		}
	}
	if balance := app.balanceOf(t, accountID); balance != 1030 {
		t.Errorf("expected balance 1030, got %.0f", balance)
	}
}

func TestLedgerFlow_MovementValidation(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 100)

	tests := []struct {
		name     string
		body     string
		status   int
		sentinel *apperrors.AppError
	}{
		{"unknown type", fmt.Sprintf(`{"type":"transfer","amount":1,"date":"2024-03-15","account_id":%.0f}`, accountID), http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"negative amount", fmt.Sprintf(`{"type":"income","amount":-1,"date":"2024-03-15","account_id":%.0f}`, accountID), http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"missing date", fmt.Sprintf(`{"type":"income","amount":1,"account_id":%.0f}`, accountID), http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"malformed date", fmt.Sprintf(`{"type":"income","amount":1,"date":"15/03/2024","account_id":%.0f}`, accountID), http.StatusBadRequest, apperrors.ErrInvalidInput},
		{"missing account", `{"type":"income","amount":1,"date":"2024-03-15","account_id":9999}`, http.StatusNotFound, apperrors.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request("POST", "/movements", tt.body)
			expectError(t, rec, tt.status, tt.sentinel)
		})
	}

	if balance := app.balanceOf(t, accountID); balance != 100 {
		t.Errorf("expected balance 100 after rejected movements, got %.0f", balance)
	}
}

func TestLedgerFlow_DeletedAccountKeepsMovements(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 100)

	movementID := app.mustCreate(t, "/movements",
		fmt.Sprintf(`{"type":"expense","amount":40,"date":"2024-03-15","account_id":%.0f}`, accountID))

	rec := app.request("DELETE", fmt.Sprintf("/accounts/%.0f", accountID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/movements/%.0f", movementID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected orphaned movement to remain, got %d: %s", rec.Code, rec.Body.String())
	}
	if accountRef := parseJSON(t, rec)["account_id"]; accountRef != nil {
		t.Errorf("expected account_id null, got %v", accountRef)
	}

	rec = app.request("DELETE", fmt.Sprintf("/movements/%.0f", movementID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 deleting orphaned movement, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLedgerFlow_BalanceUSD(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 150000)

	rec := app.request("GET", fmt.Sprintf("/accounts/%.0f/balance/usd", accountID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["currency"] != "USD" {
		t.Errorf("expected currency USD, got %v", result["currency"])
	}
	if result["balance_usd"] != "150" {
		t.Errorf("expected balance_usd 150, got %v", result["balance_usd"])
	}

	rec = app.request("GET", "/accounts/9999/balance/usd", "")
	expectError(t, rec, http.StatusNotFound, apperrors.ErrAccountNotFound)
}

func TestLedgerFlow_BalanceUSDRateUnavailable(t *testing.T) {
	app := setupAppWith(t, routerOptions(fixedRate{err: fmt.Errorf("upstream down")}, ""))
	accountID := app.createClientAndAccount(t, 100)

	rec := app.request("GET", fmt.Sprintf("/accounts/%.0f/balance/usd", accountID), "")
	expectError(t, rec, http.StatusServiceUnavailable, apperrors.ErrRateUnavailable)
}

func TestLedgerFlow_IncomeOverflowRejected(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 10)

	rec := app.request("POST", "/movements",
		fmt.Sprintf(`{"type":"income","amount":9223372036854775807,"date":"2024-03-15","account_id":%.0f}`, accountID))
	expectError(t, rec, http.StatusBadRequest, apperrors.ErrInvalidInput)

	if balance := app.balanceOf(t, accountID); balance != 10 {
		t.Errorf("expected balance 10, got %.0f", balance)
	}
}

func TestLedgerFlow_NonPositiveAccountReference(t *testing.T) {
	app := setupApp(t)

	for _, ref := range []string{"0", "-1"} {
		t.Run("account_id "+ref, func(t *testing.T) {
			rec := app.request("POST", "/movements",
				`{"type":"income","amount":1,"date":"2024-03-15","account_id":`+ref+`}`)
			expectError(t, rec, http.StatusNotFound, apperrors.ErrAccountNotFound)
		})
	}
}

func TestLedgerFlow_NegativeBalanceCanBeWrittenBack(t *testing.T) {
	app := setupApp(t)
	accountID := app.createClientAndAccount(t, 0)

	income := app.mustCreate(t, "/movements",
		fmt.Sprintf(`{"type":"income","amount":500,"date":"2024-03-01","account_id":%.0f}`, accountID))
	app.mustCreate(t, "/movements",
		fmt.Sprintf(`{"type":"expense","amount":400,"date":"2024-03-02","account_id":%.0f}`, accountID))

	rec := app.request("DELETE", fmt.Sprintf("/movements/%.0f", income), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("PUT", fmt.Sprintf("/accounts/%.0f", accountID), `{"name":"Savings","balance":-400}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if balance := app.balanceOf(t, accountID); balance != -400 {
		t.Errorf("expected balance -400, got %.0f", balance)
	}
}
