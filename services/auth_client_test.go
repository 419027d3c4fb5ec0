package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"card-explorer-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeProvider(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]string{"id": "acc-1", "email": body["email"]},
		})
	})

	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "senha-certa" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(AuthSession{
			AccessToken:  "tok-1",
			RefreshToken: "ref-1",
			ExpiresIn:    3600,
			User:         AuthUser{ID: "acc-1", Email: body["email"]},
		})
	})

	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(AuthUser{ID: "acc-1", Email: "ash@test.dev"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthClientSignUp(t *testing.T) {
	srv := newFakeProvider(t)
	client := NewAuthClient(srv.URL, "test-key")

	user, err := client.SignUp("ash@test.dev", "senha-certa")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", user.ID)
	assert.Equal(t, "ash@test.dev", user.Email)

	// provider rejection surfaces as an error
	badKey := NewAuthClient(srv.URL, "chave-errada")
	_, err = badKey.SignUp("ash@test.dev", "senha-certa")
	assert.Error(t, err)
}

func TestAuthClientSignIn(t *testing.T) {
	srv := newFakeProvider(t)
	client := NewAuthClient(srv.URL, "test-key")

	session, err := client.SignIn("ash@test.dev", "senha-certa")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.AccessToken)
	assert.Equal(t, 3600, session.ExpiresIn)

	_, err = client.SignIn("ash@test.dev", "senha-errada")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
}

func TestAuthClientGetUser(t *testing.T) {
	srv := newFakeProvider(t)
	client := NewAuthClient(srv.URL, "test-key")

	user, err := client.GetUser("tok-1")
	require.NoError(t, err)
	assert.Equal(t, "ash@test.dev", user.Email)

	_, err = client.GetUser("tok-expirado")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
}
