package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow_RolloverLifecycle(t *testing.T) {
	app := setupApp(t)
	token := app.login(t)

	app.createMonth(t, token, "2025-01")
	app.createMonth(t, token, "2025-03")
	app.createMonth(t, token, "2025-04")

	// Create a fixed expense anchored to January.
	rec := app.request("POST", "/api/v1/months/2025-01/items",
		`{"item_name":"Rent","item_type":"expense","owner":"shared","bills_pot":true,"calculation_type":"fixed","value":120000}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating item, got %d: %s", rec.Code, rec.Body.String())
	}
	item := parseJSON(t, rec)["item"].(map[string]interface{})
	itemID := item["id"].(string)

	// April has no filed value, so January's rolls forward.
	rec = app.request("GET", "/api/v1/months/2025-04/items", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 resolving April, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	items := result["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 resolved item, got %d", len(items))
	}
	line := items[0].(map[string]interface{})
	if line["effective_value"].(float64) != 120000 {
		t.Errorf("expected effective value 120000, got %v", line["effective_value"])
	}
	if line["effective_from_month_name"] != "January 2025" {
		t.Errorf("expected value from January 2025, got %v", line["effective_from_month_name"])
	}

	// File a rent rise in March.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/months/2025-03/items/%s/value", itemID),
		`{"value":125000,"notes":"annual increase"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 setting value, got %d: %s", rec.Code, rec.Body.String())
	}

	// April now picks up the March value.
	rec = app.request("GET", "/api/v1/months/2025-04/items", "", token)
	line = parseJSON(t, rec)["items"].([]interface{})[0].(map[string]interface{})
	if line["effective_value"].(float64) != 125000 {
		t.Errorf("expected effective value 125000 after rise, got %v", line["effective_value"])
	}
	if line["effective_from_month_name"] != "March 2025" {
		t.Errorf("expected value from March 2025, got %v", line["effective_from_month_name"])
	}

	// January is untouched by the later version.
	rec = app.request("GET", "/api/v1/months/2025-01/items", "", token)
	line = parseJSON(t, rec)["items"].([]interface{})[0].(map[string]interface{})
	if line["effective_value"].(float64) != 120000 {
		t.Errorf("expected January to keep 120000, got %v", line["effective_value"])
	}

	// Remove the item from April onward.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/months/2025-04/items/%s", itemID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 removing item, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/months/2025-04/items", "", token)
	if n := len(parseJSON(t, rec)["items"].([]interface{})); n != 0 {
		t.Errorf("expected 0 items in April after removal, got %d", n)
	}

	rec = app.request("GET", "/api/v1/months/2025-03/items", "", token)
	if n := len(parseJSON(t, rec)["items"].([]interface{})); n != 1 {
		t.Errorf("expected item to survive in March, got %d items", n)
	}
}

func TestBudgetFlow_WeeklyItemCalculation(t *testing.T) {
	app := setupApp(t)
	token := app.login(t)

	app.createMonth(t, token, "2026-01")

	// January 2026 has five Thursdays.
	rec := app.request("POST", "/api/v1/months/2026-01/items",
		`{"item_name":"Cleaner","item_type":"expense","owner":"shared","calculation_type":"weekly_count","weekly_payment_day":4,"value":1000}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating weekly item, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/months/2026-01/items", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	line := parseJSON(t, rec)["items"].([]interface{})[0].(map[string]interface{})
	if line["value"].(float64) != 1000 {
		t.Errorf("expected raw value 1000, got %v", line["value"])
	}
	if line["occurrences"].(float64) != 5 {
		t.Errorf("expected 5 occurrences, got %v", line["occurrences"])
	}
	if line["effective_value"].(float64) != 5000 {
		t.Errorf("expected effective value 5000, got %v", line["effective_value"])
	}
}

func TestBudgetFlow_PastMonthsImmutable(t *testing.T) {
	app := setupApp(t)
	token := app.login(t)

	app.createMonth(t, token, "2024-12")
	app.createMonth(t, token, "2025-01")

	rec := app.request("POST", "/api/v1/months/2025-01/items",
		`{"item_name":"Gym","item_type":"expense","owner":"alex","calculation_type":"fixed","value":4500}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	itemID := parseJSON(t, rec)["item"].(map[string]interface{})["id"].(string)

	// The pinned clock says today is 2025-01-01, so December is closed.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/months/2024-12/items/%s/value", itemID),
		`{"value":4000}`, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for past month, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "PAST_PERIOD" {
		t.Errorf("expected PAST_PERIOD, got %v", errObj["code"])
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/months/2024-12/items/%s", itemID), "", token)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 removing from past month, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBudgetFlow_OneOffDoesNotRollForward(t *testing.T) {
	app := setupApp(t)
	token := app.login(t)

	app.createMonth(t, token, "2025-02")
	app.createMonth(t, token, "2025-03")

	rec := app.request("POST", "/api/v1/months/2025-02/items",
		`{"item_name":"Boiler repair","item_type":"expense","owner":"shared","calculation_type":"fixed","value":25000,"is_one_off":true}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/months/2025-02/items", "", token)
	if n := len(parseJSON(t, rec)["items"].([]interface{})); n != 1 {
		t.Fatalf("expected one-off to resolve in its filed month, got %d items", n)
	}

	rec = app.request("GET", "/api/v1/months/2025-03/items", "", token)
	if n := len(parseJSON(t, rec)["items"].([]interface{})); n != 0 {
		t.Errorf("expected one-off to be absent the following month, got %d items", n)
	}
}

func TestBudgetFlow_InvalidMonthKeyRejected(t *testing.T) {
	app := setupApp(t)
	token := app.login(t)

	rec := app.request("POST", "/api/v1/months", `{"month":"2025-13"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid month key, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/months", `{"month":"march 2025"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-key month, got %d: %s", rec.Code, rec.Body.String())
	}
}
