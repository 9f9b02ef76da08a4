package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SaiNageswarS/go-mvc-boot/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoServer(t *testing.T) *server.BootServer {
	t.Helper()
	srv, err := demoBuilder().HTTPPort("127.0.0.1:0").Build()
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestDemoRoutes(t *testing.T) {
	h := demoServer(t).Handler()

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"home", "/", http.StatusOK, `{"app":"mvc-boot","status":"ok"}`},
		{"list users", "/admin/users", http.StatusOK,
			`[{"id":1,"name":"ada","admin":true},{"id":2,"name":"linus","admin":false},{"id":3,"name":"grace","admin":true}]`},
		{"show user", "/admin/users/2", http.StatusOK, `{"id":2,"name":"linus","admin":false}`},
		{"raw params", "/ping?x=1", http.StatusOK, `{"pong":true,"params":{"x":"1"}}`},
		{"named func", "/hello/ada", http.StatusOK, `"hello ada"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestDemoUnknownUser(t *testing.T) {
	h := demoServer(t).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user 99 not found")
}
