package verify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVerifySkippedWithoutSecret(t *testing.T) {
	ts := NewTurnstile("")
	ok, err := ts.Verify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected verification to be skipped when no secret is configured")
	}
	if ts.Enabled() {
		t.Fatalf("expected Enabled() to be false without a secret")
	}
}

func TestVerifyAgainstEndpoint(t *testing.T) {
	var gotSecret, gotResponse string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Secret   string `json:"secret"`
			Response string `json:"response"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotSecret = req.Secret
		gotResponse = req.Response
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": req.Response == "valid-token",
		})
	}))
	defer srv.Close()

	ts := NewTurnstileWithEndpoint("server-secret", srv.URL)

	ok, err := ts.Verify(context.Background(), "valid-token")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid token to pass")
	}
	if gotSecret != "server-secret" || gotResponse != "valid-token" {
		t.Fatalf("unexpected payload: secret=%q response=%q", gotSecret, gotResponse)
	}

	ok, err = ts.Verify(context.Background(), "bad-token")
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatalf("expected bad token to fail")
	}
}

func TestVerifyUnreachableEndpoint(t *testing.T) {
	ts := NewTurnstileWithEndpoint("secret", "http://127.0.0.1:1")
	ok, err := ts.Verify(context.Background(), "token")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if ok {
		t.Fatalf("expected verification to fail on transport error")
	}
}
