package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":  {},
	"requestId":  {},
	"created_at": {},
	"reference":  {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(&c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanValue(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanValue(v any) {
	switch val := v.(type) {
	case map[string]any:
		for k := range val {
			if _, ok := keysToIgnore[k]; ok {
				delete(val, k)
				continue
			}
			cleanValue(val[k])
		}
	case []any:
		for _, item := range val {
			cleanValue(item)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	sql, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(sql))
	require.NoError(t, err)
}

func truncateUsers(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// authenticatedUserCookies registers the test user if needed and logs in,
// returning the session cookie to attach to subsequent requests.
func (app *TestApp) authenticatedUserCookies(t testing.TB) []http.Cookie {
	return app.userCookies(t, TestUserName, TestUserEmail, TestUserPassword)
}

func (app *TestApp) userCookies(t testing.TB, name, email, password string) []http.Cookie {
	signupBody := fmt.Sprintf(`{"name": %q, "email": %q, "password": %q}`, name, email, password)

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(signupBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	// 400 means the user already exists from an earlier scenario
	if rec.Code != http.StatusCreated && rec.Code != http.StatusBadRequest {
		t.Fatalf("failed to register test user: status %d, body %s", rec.Code, rec.Body.String())
	}

	loginBody := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)

	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("failed to log in test user: status %d, body %s", rec.Code, rec.Body.String())
	}

	res := rec.Result()
	defer res.Body.Close()

	cookies := make([]http.Cookie, 0, len(res.Cookies()))
	for _, c := range res.Cookies() {
		cookies = append(cookies, *c)
	}

	if len(cookies) == 0 {
		t.Fatal("expected a session cookie after login")
	}

	return cookies
}
