package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()
	app := &application{
		storage: newMemStorage(),
	}
	app.config.env = "test"
	app.config.jwt.secret = "test-signing-secret"
	app.config.jwt.ttl = 30 * time.Minute
	return app
}

// doRequest routes a request through the full handler chain and returns the
// recorded response. An empty token leaves the Authorization header unset.
func doRequest(t *testing.T, app *application, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	composeRoutes(app).ServeHTTP(w, r)
	return w
}

func doRawRequest(t *testing.T, app *application, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	composeRoutes(app).ServeHTTP(w, r)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func registerTestUser(t *testing.T, app *application, email, name, password string) string {
	t.Helper()
	w := doRequest(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: expected status 200, got %d: %s", email, w.Code, w.Body.String())
	}
	var u user
	decodeResponse(t, w, &u)
	return u.ID
}

func loginTestUser(t *testing.T, app *application, email, password string) string {
	t.Helper()
	w := doRequest(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected status 200, got %d: %s", email, w.Code, w.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decodeResponse(t, w, &out)
	if out.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}
	return out.AccessToken
}

func createTestTodo(t *testing.T, app *application, token string, body map[string]any) todo {
	t.Helper()
	w := doRequest(t, app, http.MethodPost, "/todos/", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("create todo: expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var created todo
	decodeResponse(t, w, &created)
	return created
}
