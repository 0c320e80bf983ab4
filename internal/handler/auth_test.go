package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seating-planner/internal/config"
	"github.com/iliyamo/exam-seating-planner/internal/middleware"
	"github.com/iliyamo/exam-seating-planner/internal/utils"
)

func authEcho() (*echo.Echo, *memAdmins, *memTokens) {
	admins, tokens := newMemAdmins(), newMemTokens()
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	h := NewAuthHandler(cfg, admins, tokens)

	e := newEcho()
	e.POST("/v1/auth/register", h.Register)
	e.POST("/v1/auth/login", h.Login)
	e.POST("/v1/auth/refresh", h.Refresh)
	e.POST("/v1/auth/logout", h.Logout, middleware.JWTAuth(cfg.JWTSecret))
	return e, admins, tokens
}

func decodeAuth(t *testing.T, body []byte) authResp {
	t.Helper()
	var r authResp
	if err := json.Unmarshal(body, &r); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	e, _, _ := authEcho()

	rec := serve(e, http.MethodPost, "/v1/auth/register",
		`{"username":"Exam Office","email":"Office@Example.com","password":"s3cretpass"}`, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d (%s)", rec.Code, rec.Body)
	}
	reg := decodeAuth(t, rec.Body.Bytes())
	if reg.Admin.Email != "office@example.com" || reg.Access.Token == "" || reg.Refresh.Token == "" {
		t.Fatalf("register resp = %+v", reg)
	}
	claims, err := utils.ParseAccessToken("test-secret", reg.Access.Token)
	if err != nil || claims.Role != "ADMIN" {
		t.Fatalf("access token: %v %+v", err, claims)
	}

	rec = serve(e, http.MethodPost, "/v1/auth/register",
		`{"username":"Other","email":"office@example.com","password":"s3cretpass"}`, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status = %d", rec.Code)
	}

	tests := []struct {
		name, body string
		want       int
	}{
		{"ok", `{"email":"office@example.com","password":"s3cretpass"}`, http.StatusOK},
		{"wrong password", `{"email":"office@example.com","password":"nope-nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"who@example.com","password":"s3cretpass"}`, http.StatusUnauthorized},
		{"invalid email", `{"email":"who","password":"s3cretpass"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := serve(e, http.MethodPost, "/v1/auth/login", tt.body, echo.MIMEApplicationJSON); rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	e, admins, _ := authEcho()
	rec := serve(e, http.MethodPost, "/v1/auth/register",
		`{"username":"x","email":"x@example.com","password":"short"}`, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusBadRequest || len(admins.byID) != 0 {
		t.Fatalf("status = %d, admins = %d", rec.Code, len(admins.byID))
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	e, _, _ := authEcho()
	rec := serve(e, http.MethodPost, "/v1/auth/register",
		`{"username":"a","email":"a@example.com","password":"s3cretpass"}`, echo.MIMEApplicationJSON)
	old := decodeAuth(t, rec.Body.Bytes()).Refresh.Token

	rec = serve(e, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"`+old+`"}`, echo.MIMEApplicationJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: status = %d (%s)", rec.Code, rec.Body)
	}
	if next := decodeAuth(t, rec.Body.Bytes()).Refresh.Token; next == old {
		t.Fatal("refresh token was not rotated")
	}
	if rec := serve(e, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"`+old+`"}`, echo.MIMEApplicationJSON); rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh token: status = %d", rec.Code)
	}
	if rec := serve(e, http.MethodPost, "/v1/auth/refresh", `{}`, echo.MIMEApplicationJSON); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty refresh: status = %d", rec.Code)
	}
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	e, _, tokens := authEcho()
	rec := serve(e, http.MethodPost, "/v1/auth/register",
		`{"username":"a","email":"a@example.com","password":"s3cretpass"}`, echo.MIMEApplicationJSON)
	r := decodeAuth(t, rec.Body.Bytes())

	if rec := serve(e, http.MethodPost, "/v1/auth/logout", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("logout without token: status = %d", rec.Code)
	}

	req := newAuthedRequest(http.MethodPost, "/v1/auth/logout", r.Access.Token)
	rec = serveReq(e, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: status = %d (%s)", rec.Code, rec.Body)
	}
	if !tokens.revoked[utils.HashRefreshRaw(r.Refresh.Token)] {
		t.Fatal("refresh token still live after logout")
	}
}
