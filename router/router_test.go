package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_MatchConventionString(t *testing.T) {
	r := New().
		Get("/admin", "AdminController@index").
		Get("/admin/users/{id:[0-9]+}", `Admin\UserController@show`)

	result, ok := r.Match(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.True(t, ok)
	assert.Equal(t, "AdminController@index", result.Callback)
	assert.Empty(t, result.Params)

	result, ok = r.Match(httptest.NewRequest(http.MethodGet, "/admin/users/42", nil))
	require.True(t, ok)
	assert.Equal(t, `Admin\UserController@show`, result.Callback)
	assert.Equal(t, map[string]any{"id": "42"}, result.Params)
}

func TestRouter_PathWinsOverQuery(t *testing.T) {
	r := New().Get("/users/{id}", "UserController@show")

	result, ok := r.Match(httptest.NewRequest(http.MethodGet, "/users/7?id=9&page=2&page=3", nil))
	require.True(t, ok)
	assert.Equal(t, "7", result.Params["id"])
	assert.Equal(t, "2", result.Params["page"])
}

func TestRouter_NoMatch(t *testing.T) {
	r := New().Post("/users", "UserController@store")

	_, ok := r.Match(httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.False(t, ok, "method mismatch is not a match")

	_, ok = r.Match(httptest.NewRequest(http.MethodPost, "/missing", nil))
	assert.False(t, ok)

	_, ok = New().Match(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestRouter_FuncCallback(t *testing.T) {
	fn := func(p map[string]any) any { return p }
	r := New().Delete("/items/{id}", fn)

	result, ok := r.For(httptest.NewRequest(http.MethodDelete, "/items/3", nil)).Run()
	require.True(t, ok)
	assert.NotNil(t, result.Callback)
	assert.Equal(t, "3", result.Params["id"])
}

func TestRouter_ReplaceAndList(t *testing.T) {
	r := New().
		Put("/b", "BController@update").
		Patch("/b", "BController@patch").
		Get("/a", "AController@index").
		Get("/a", "AController@replaced")

	result, ok := r.Match(httptest.NewRequest(http.MethodGet, "/a", nil))
	require.True(t, ok)
	assert.Equal(t, "AController@replaced", result.Callback)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, Route{Method: http.MethodGet, Path: "/a", Callback: "AController@replaced"}, routes[0])
	assert.Equal(t, http.MethodPatch, routes[1].Method)
	assert.Equal(t, http.MethodPut, routes[2].Method)
}
