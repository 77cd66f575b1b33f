package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"inkwell/internal/client"
)

// stubPassword replaces the terminal password reader for the duration of a
// test and reports whether it was consulted.
func stubPassword(t *testing.T, password string) *bool {
	t.Helper()
	called := false
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) {
		called = true
		return []byte(password), nil
	}
	t.Cleanup(func() { readPassword = orig })
	return &called
}

func newTestApp(t *testing.T, input string, handler http.HandlerFunc) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &App{
		api:    client.New(srv.URL + "/api"),
		reader: bufio.NewReader(strings.NewReader(input)),
	}
}

func TestLogin_PasswordReadWithoutEcho(t *testing.T) {
	called := stubPassword(t, "secret1")

	var gotPassword string
	a := newTestApp(t, "ann@x.com\n", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPassword = body["password"]
		_ = json.NewEncoder(w).Encode(client.AuthResponse{
			Token: "tok-123",
			User:  client.UserProfile{ID: "user-1", Name: "Ann", Email: "ann@x.com"},
		})
	})

	a.login(context.Background())

	assert.True(t, *called, "the password must come from the terminal reader, not the line reader")
	assert.Equal(t, "secret1", gotPassword)
	assert.Equal(t, "tok-123", a.api.Token())
	assert.Equal(t, "Ann", a.userName)
}

func TestRegister_PasswordReadWithoutEcho(t *testing.T) {
	called := stubPassword(t, "secret1")

	var gotPassword string
	a := newTestApp(t, "Ann\nann@x.com\n", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPassword = body["password"]
		_ = json.NewEncoder(w).Encode(client.AuthResponse{
			Token: "tok-456",
			User:  client.UserProfile{ID: "user-1", Name: "Ann", Email: "ann@x.com"},
		})
	})

	a.register(context.Background())

	assert.True(t, *called)
	assert.Equal(t, "secret1", gotPassword)
	assert.Equal(t, "tok-456", a.api.Token())
}
