// Package auth issues and validates the emulator's bearer tokens.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/store"
)

const (
	tokenLength = 32

	// TokenTTL is the lifetime of an issued access token.
	TokenTTL = time.Hour
)

// TokenManager manages bearer access tokens.
type TokenManager struct {
	store *store.Store
	now   func() time.Time
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(s *store.Store) *TokenManager {
	return &TokenManager{store: s, now: time.Now}
}

// GenerateToken generates a new access token and stores it.
func (tm *TokenManager) GenerateToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(b)
	if err := tm.Register(token, TokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Register stores a caller-chosen token valid for ttl.
func (tm *TokenManager) Register(token string, ttl time.Duration) error {
	expiresAt := tm.now().Add(ttl).Unix()
	if err := tm.store.PutString(store.BucketTokens, token, strconv.FormatInt(expiresAt, 10)); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// ValidateToken reports whether token is known and not expired. Expired
// tokens are removed.
func (tm *TokenManager) ValidateToken(token string) (bool, error) {
	expiresAtStr, err := tm.store.GetString(store.BucketTokens, token)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get token: %w", err)
	}

	expiresAt, err := strconv.ParseInt(expiresAtStr, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse expiration time: %w", err)
	}

	if tm.now().Unix() > expiresAt {
		_ = tm.store.DeleteString(store.BucketTokens, token)
		return false, nil
	}

	return true, nil
}

// RevokeToken revokes an access token.
func (tm *TokenManager) RevokeToken(token string) error {
	return tm.store.DeleteString(store.BucketTokens, token)
}

// TokenResponse is the body of POST /oauth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// HandleToken issues a token for any grant type.
func (tm *TokenManager) HandleToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := r.ParseForm(); err != nil || r.FormValue("grant_type") == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Missing grant_type"})
		return
	}

	token, err := tm.GenerateToken()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Failed to generate access token"})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(TokenTTL.Seconds()),
	})
}
