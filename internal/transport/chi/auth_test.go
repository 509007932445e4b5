package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func authProbe(t *testing.T, keys []string, path string, header, value string) *httptest.ResponseRecorder {
	t.Helper()

	handler := BearerAuthMiddleware(keys)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", path, http.NoBody)
	if header != "" {
		req.Header.Set(header, value)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestAuthMiddleware(t *testing.T) {
	keys := []string{"key1", "key2"}

	tests := []struct {
		name   string
		keys   []string
		path   string
		header string
		value  string
		want   int
	}{
		{"no keys configured passes through", nil, "/api/v1/collections", "", "", http.StatusOK},
		{"missing header", keys, "/api/v1/collections", "", "", http.StatusUnauthorized},
		{"basic scheme rejected", keys, "/api/v1/collections", "Authorization", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"wrong bearer token", keys, "/api/v1/collections", "Authorization", "Bearer wrong-key", http.StatusUnauthorized},
		{"first key accepted", keys, "/api/v1/collections", "Authorization", "Bearer key1", http.StatusOK},
		{"second key accepted", keys, "/api/v1/collections", "Authorization", "Bearer key2", http.StatusOK},
		{"x-api-key header accepted", keys, "/api/v1/collections", "X-API-Key", "key1", http.StatusOK},
		{"x-api-key wrong value", keys, "/api/v1/collections", "X-API-Key", "nope", http.StatusUnauthorized},
		{"health exempt", keys, "/health", "", "", http.StatusOK},
		{"metrics exempt", keys, "/metrics", "", "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := authProbe(t, tc.keys, tc.path, tc.header, tc.value)
			if rr.Code != tc.want {
				t.Errorf("status: got %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

func TestAuthMiddleware_ErrorBody(t *testing.T) {
	rr := authProbe(t, []string{"secret"}, "/api/v1/collections", "", "")

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeBadRequest {
		t.Errorf("error code: got %s, want %s", errResp.Code, codeBadRequest)
	}
	if errResp.Message == "" {
		t.Error("error message is empty")
	}
}
