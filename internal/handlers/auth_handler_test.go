package handlers

import (
	"net/http"
	"testing"

	"github.com/darshan4295/interview-app/internal/models"
)

func TestAuthHandler_RegisterHandler(t *testing.T) {
	env := newHandlerEnv(t)
	register := validated[*models.RegisterRequest](env.auth.RegisterHandler)

	t.Run("invalid JSON payload", func(t *testing.T) {
		rec := serve(register, http.MethodPost, "/auth/register", "{invalid", nil, nil)
		expectStatus(t, rec, http.StatusBadRequest)
		if decodeResponse(t, rec)["code"] != "invalid_json" {
			t.Fatalf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("admin self registration", func(t *testing.T) {
		rec := serve(register, http.MethodPost, "/auth/register",
			`{"name":"Eve","email":"eve@example.com","password":"secret1","role":"ADMIN"}`, nil, nil)
		expectStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("success hides password", func(t *testing.T) {
		rec := serve(register, http.MethodPost, "/auth/register",
			`{"name":"Sam","email":"Sam@Example.com","password":"secret1"}`, nil, nil)
		expectStatus(t, rec, http.StatusCreated)
		user := decodeResponse(t, rec)["user"].(map[string]any)
		if user["email"] != "sam@example.com" || user["role"] != "CANDIDATE" {
			t.Fatalf("unexpected user %v", user)
		}
		if _, ok := user["passwordHash"]; ok {
			t.Fatalf("password hash must not be serialized")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := serve(register, http.MethodPost, "/auth/register",
			`{"name":"Sam","email":"sam@example.com","password":"secret1"}`, nil, nil)
		expectStatus(t, rec, http.StatusConflict)
	})
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := newHandlerEnv(t)
	register := validated[*models.RegisterRequest](env.auth.RegisterHandler)
	login := validated[*models.LoginRequest](env.auth.LoginHandler)

	expectStatus(t, serve(register, http.MethodPost, "/auth/register",
		`{"name":"Lee","email":"lee@example.com","password":"secret1","role":"INTERVIEWER"}`, nil, nil), http.StatusCreated)

	rec := serve(login, http.MethodPost, "/auth/login", `{"email":"lee@example.com","password":"nope"}`, nil, nil)
	expectStatus(t, rec, http.StatusUnauthorized)
	if decodeResponse(t, rec)["message"] != "Invalid email or password" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = serve(login, http.MethodPost, "/auth/login", `{"email":"lee@example.com","password":"secret1"}`, nil, nil)
	expectStatus(t, rec, http.StatusOK)
	if decodeResponse(t, rec)["token"] == "" {
		t.Fatalf("expected a token")
	}

	rec = serve(http.HandlerFunc(env.auth.MeHandler), http.MethodGet, "/auth/me", "", env.candidateP, nil)
	expectStatus(t, rec, http.StatusOK)
	if decodeResponse(t, rec)["id"] != env.candidateP.ID {
		t.Fatalf("unexpected me %s", rec.Body.String())
	}

	rec = serve(validated[*models.UpdateProfileRequest](env.auth.UpdateMeHandler), http.MethodPatch, "/auth/me", `{"role":"ADMIN"}`, env.candidateP, nil)
	expectStatus(t, rec, http.StatusBadRequest)
	if decodeResponse(t, rec)["message"] != "Role cannot be changed" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
