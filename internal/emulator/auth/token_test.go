package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/store"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "emulator.db"))
	if err != nil {
		t.Fatalf("store.New() error: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return NewTokenManager(st)
}

func TestTokenLifecycle(t *testing.T) {
	tm := newTestManager(t)

	token, err := tm.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	if ok, err := tm.ValidateToken(token); err != nil || !ok {
		t.Errorf("ValidateToken() = %v, %v for a fresh token", ok, err)
	}
	if ok, _ := tm.ValidateToken("unknown"); ok {
		t.Error("ValidateToken(unknown) = true")
	}

	if err := tm.RevokeToken(token); err != nil {
		t.Fatalf("RevokeToken() error: %v", err)
	}
	if ok, _ := tm.ValidateToken(token); ok {
		t.Error("ValidateToken() = true after revoke")
	}
}

func TestExpiredToken(t *testing.T) {
	tm := newTestManager(t)

	if err := tm.Register("fixed", time.Minute); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if ok, _ := tm.ValidateToken("fixed"); !ok {
		t.Fatal("ValidateToken() = false before expiry")
	}

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if ok, _ := tm.ValidateToken("fixed"); ok {
		t.Error("ValidateToken() = true after expiry")
	}
}

func TestHandleToken(t *testing.T) {
	tm := newTestManager(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"client credentials", "grant_type=client_credentials", http.StatusOK},
		{"missing grant type", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/oauth/token", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			tm.HandleToken(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, expected %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp TokenResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if ok, _ := tm.ValidateToken(resp.AccessToken); !ok {
				t.Error("issued token does not validate")
			}
		})
	}
}
