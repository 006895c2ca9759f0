package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h := AdminLoginHandler(hash, "jwt-secret")

	t.Run("valid password issues token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"s3cret"}`))
		rec := httptest.NewRecorder()

		h(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var resp loginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("expected token in body")
		}
		if got := rec.Header().Get("Authorization"); got != "Bearer "+resp.Token {
			t.Errorf("Authorization = %q, want bearer with the body token", got)
		}

		token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte("jwt-secret"), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("token does not verify: %v", err)
		}
		claims := token.Claims.(jwt.MapClaims)
		if role, _ := claims["role"].(string); role != "admin" {
			t.Errorf("role = %q, want admin", role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":"nope"}`))
		rec := httptest.NewRecorder()

		h(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Error == "" {
			t.Error("expected error message in body")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{`))
		rec := httptest.NewRecorder()

		h(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
