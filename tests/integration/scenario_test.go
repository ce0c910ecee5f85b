package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// TestScenario walks the reference flow: register, duplicate register, bad
// login, invalid transaction, cross-user budget read and read-after-delete.
func TestScenario(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/users", `{"email":"a@x.com","password":"pw12345678"}`, "")
	expectStatus(t, rec, http.StatusCreated)

	rec = app.request("POST", "/api/v1/users", `{"email":"a@x.com","password":"pw12345678"}`, "")
	expectStatus(t, rec, http.StatusConflict)
	if code := errorCode(t, rec); code != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %s", code)
	}

	rec = app.request("POST", "/api/v1/auth/login", `{"email":"a@x.com","password":"wrong-password"}`, "")
	expectStatus(t, rec, http.StatusBadRequest)
	if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %s", code)
	}

	tokenA := app.loginUser(t, "a@x.com", "pw12345678")

	rec = app.request("POST", "/api/v1/transactions", `{"amount":-5,"category":"Food","type":"expense"}`, tokenA)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	if code := errorCode(t, rec); code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %s", code)
	}

	budgetID := app.create(t, "/api/v1/budgets",
		`{"category":"Food","amount":300,"start_date":"2024-01-01","end_date":"2024-01-31"}`, tokenA)

	_, tokenB := app.signUp(t, "b@x.com")
	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%d", budgetID), "", tokenB)
	expectStatus(t, rec, http.StatusForbidden)
	if code := errorCode(t, rec); code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %s", code)
	}

	txID := app.create(t, "/api/v1/transactions", `{"amount":12.5,"category":"Food","type":"expense"}`, tokenA)
	path := fmt.Sprintf("/api/v1/transactions/%d", txID)

	expectStatus(t, app.request("DELETE", path, "", tokenA), http.StatusNoContent)

	rec = app.request("GET", path, "", tokenA)
	expectStatus(t, rec, http.StatusNotFound)
	if code := errorCode(t, rec); code != "TRANSACTION_NOT_FOUND" {
		t.Errorf("expected TRANSACTION_NOT_FOUND, got %s", code)
	}
}
