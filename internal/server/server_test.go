package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kartikn/roomfund/internal/auth"
	"github.com/kartikn/roomfund/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return New(store, tokens)
}

// doJSON performs a request against the server and decodes the JSON response.
func doJSON(t *testing.T, srv *Server, method, path string, headers map[string]string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, decoded
}

func field(t *testing.T, m map[string]any, keys ...string) any {
	t.Helper()
	var v any = m
	for _, k := range keys {
		obj, ok := v.(map[string]any)
		if !ok {
			t.Fatalf("expected object at %q, got %T", k, v)
		}
		v, ok = obj[k]
		if !ok {
			t.Fatalf("missing field %q in %v", k, obj)
		}
	}
	return v
}

func TestAPIFlow(t *testing.T) {
	srv := newTestServer(t)

	// Open a room. The response carries the admin's access key.
	status, body := doJSON(t, srv, http.MethodPost, "/api/rooms", nil, map[string]any{
		"code":      "4E2WNP",
		"name":      "Flat 302",
		"adminName": "Asha",
	})
	if status != http.StatusCreated {
		t.Fatalf("create room status = %d, want 201: %v", status, body)
	}
	roomCode := field(t, body, "room", "code").(string)
	adminKey := field(t, body, "admin", "id").(string)
	if roomCode != "4E2WNP" {
		t.Fatalf("room code = %s, want 4E2WNP", roomCode)
	}

	summaryPath := "/api/rooms/" + roomCode + "/summary"

	t.Run("summary requires a credential", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodGet, summaryPath, nil, nil)
		if status != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", status)
		}
	})

	t.Run("unknown access key is denied", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodGet, summaryPath,
			map[string]string{"X-Member-Id": "00000000-0000-0000-0000-000000000001"}, nil)
		if status != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", status)
		}
	})

	adminHeaders := map[string]string{"X-Member-Id": adminKey}

	// Log in with the lowercase code and switch to the session token.
	status, body = doJSON(t, srv, http.MethodPost, "/api/login", nil, map[string]any{
		"room":      "4e2wnp",
		"accessKey": adminKey,
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %v", status, body)
	}
	token := field(t, body, "token").(string)
	bearerHeaders := map[string]string{"Authorization": "Bearer " + token}

	// Admin adds a second member.
	status, body = doJSON(t, srv, http.MethodPost, "/api/rooms/"+roomCode+"/members",
		adminHeaders, map[string]any{"name": "Bikram"})
	if status != http.StatusCreated {
		t.Fatalf("add member status = %d, want 201: %v", status, body)
	}
	memberKey := field(t, body, "id").(string)
	memberHeaders := map[string]string{"X-Member-Id": memberKey}

	t.Run("non-admin cannot manage members", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodPost, "/api/rooms/"+roomCode+"/members",
			memberHeaders, map[string]any{"name": "Chitra"})
		if status != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", status)
		}
	})

	// Admin deposits 200 through the session token, then pays a 100 expense
	// split between both members.
	status, body = doJSON(t, srv, http.MethodPost, "/api/rooms/"+roomCode+"/deposits",
		bearerHeaders, map[string]any{"memberId": adminKey, "amount": 200})
	if status != http.StatusCreated {
		t.Fatalf("deposit status = %d, want 201: %v", status, body)
	}
	depositID := field(t, body, "id").(string)

	status, body = doJSON(t, srv, http.MethodPost, "/api/rooms/"+roomCode+"/expenses",
		adminHeaders, map[string]any{
			"amount":      100,
			"description": "Groceries",
			"paidBy":      adminKey,
			"splitAmong":  []string{adminKey, memberKey},
		})
	if status != http.StatusCreated {
		t.Fatalf("expense status = %d, want 201: %v", status, body)
	}
	expenseID := field(t, body, "id").(string)

	t.Run("summary reflects the pool", func(t *testing.T) {
		status, body := doJSON(t, srv, http.MethodGet, summaryPath, memberHeaders, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200: %v", status, body)
		}

		adminBalance := field(t, body, "balances", adminKey, "balance").(float64)
		memberBalance := field(t, body, "balances", memberKey, "balance").(float64)
		if math.Abs(adminBalance-150) > 1e-9 {
			t.Errorf("admin balance = %v, want 150", adminBalance)
		}
		if math.Abs(memberBalance-(-50)) > 1e-9 {
			t.Errorf("member balance = %v, want -50", memberBalance)
		}
		if spent := field(t, body, "totalSpent").(float64); math.Abs(spent-100) > 1e-9 {
			t.Errorf("total spent = %v, want 100", spent)
		}
	})

	t.Run("splitting over a non-member fails with the bad IDs", func(t *testing.T) {
		status, body := doJSON(t, srv, http.MethodPost, "/api/rooms/"+roomCode+"/expenses",
			adminHeaders, map[string]any{
				"amount":     10,
				"paidBy":     adminKey,
				"splitAmong": []string{adminKey, "stranger"},
			})
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400: %v", status, body)
		}
	})

	t.Run("expense edits are admin-only and partial", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodPut, "/api/expenses/"+expenseID,
			memberHeaders, map[string]any{"amount": 80})
		if status != http.StatusForbidden {
			t.Fatalf("non-admin edit status = %d, want 403", status)
		}

		status, body := doJSON(t, srv, http.MethodPut, "/api/expenses/"+expenseID,
			adminHeaders, map[string]any{"amount": 80})
		if status != http.StatusOK {
			t.Fatalf("edit status = %d, want 200: %v", status, body)
		}
		if amount := field(t, body, "amount").(float64); math.Abs(amount-80) > 1e-9 {
			t.Errorf("amount = %v, want 80", amount)
		}
		if desc := field(t, body, "description").(string); desc != "Groceries" {
			t.Errorf("description = %q, want unchanged", desc)
		}
	})

	t.Run("deposit history is paginated", func(t *testing.T) {
		status, body := doJSON(t, srv, http.MethodGet,
			"/api/rooms/"+roomCode+"/deposits?page=1&limit=10", adminHeaders, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200: %v", status, body)
		}
		if total := field(t, body, "totalCount").(float64); total != 1 {
			t.Errorf("total count = %v, want 1", total)
		}
		if page := field(t, body, "currentPage").(float64); page != 1 {
			t.Errorf("current page = %v, want 1", page)
		}
	})

	t.Run("corrections delete records", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodDelete, "/api/deposits/"+depositID, adminHeaders, nil)
		if status != http.StatusOK {
			t.Fatalf("delete deposit status = %d, want 200", status)
		}
		status, _ = doJSON(t, srv, http.MethodDelete, "/api/deposits/"+depositID, adminHeaders, nil)
		if status != http.StatusNotFound {
			t.Fatalf("second delete status = %d, want 404", status)
		}

		status, _ = doJSON(t, srv, http.MethodDelete, "/api/expenses/"+expenseID, adminHeaders, nil)
		if status != http.StatusOK {
			t.Fatalf("delete expense status = %d, want 200", status)
		}
	})

	t.Run("duplicate room code conflicts", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodPost, "/api/rooms", nil, map[string]any{
			"code":      "4e2wnp",
			"name":      "Other",
			"adminName": "Chitra",
		})
		if status != http.StatusConflict {
			t.Fatalf("status = %d, want 409", status)
		}
	})

	t.Run("garbled token is rejected", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodGet, summaryPath,
			map[string]string{"Authorization": "Bearer not.a.token"}, nil)
		if status != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", status)
		}
	})
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
