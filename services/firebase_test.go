package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RomeoThePickleTec/task-management-system-sub001/models"
)

func TestFirebaseExistsByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "accounts:lookup") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{{"localId": "uid-1"}},
		})
	}))
	defer srv.Close()

	c := NewFirebaseClientWithBaseURL("key", srv.URL)
	exists, err := c.ExistsByEmail(context.Background(), "dev@example.com")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected account to exist")
	}
}

func TestFirebaseCreateDuplicateEmailSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "EMAIL_EXISTS"},
		})
	}))
	defer srv.Close()

	c := NewFirebaseClientWithBaseURL("key", srv.URL)
	_, err := c.CreateWithPassword(context.Background(), models.User{Email: "dup@example.com"}, "pw")

	var fbErr *FirebaseError
	if !errors.As(err, &fbErr) {
		t.Fatalf("expected FirebaseError, got %v", err)
	}
	if fbErr.Message != "EMAIL_EXISTS" {
		t.Fatalf("provider message must come through verbatim, got %q", fbErr.Message)
	}
}

func TestFirebaseListAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"localId": "a", "email": "a@x.com", "displayName": "A"},
				{"localId": "b", "email": "b@x.com"},
			},
		})
	}))
	defer srv.Close()

	c := NewFirebaseClientWithBaseURL("key", srv.URL)
	accounts, err := c.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].UID != "a" || accounts[0].DisplayName != "A" {
		t.Fatalf("unexpected first account %+v", accounts[0])
	}
}
