package auth

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/picmemo/service/internal/config"
)

// The repository is backed by Postgres; these tests cover the logic that
// runs before any persistence is touched.

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	svc := NewService(nil, &config.Config{JWTSecret: "secret"})

	_, _, err := svc.Register(context.Background(), "alice", "password123", "password124")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterHandlerInputValidation(t *testing.T) {
	h := NewHandler(NewService(nil, &config.Config{JWTSecret: "secret"}))

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username": `},
		{"username too short", `{"username":"ab","password":"password123","confirmPassword":"password123"}`},
		{"username bad chars", `{"username":"al ice","password":"password123","confirmPassword":"password123"}`},
		{"password too short", `{"username":"alice","password":"short","confirmPassword":"short"}`},
		{"password mismatch", `{"username":"alice","password":"password123","confirmPassword":"password124"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginHandlerInputValidation(t *testing.T) {
	h := NewHandler(NewService(nil, &config.Config{JWTSecret: "secret"}))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"","password":""}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
