package render

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stamp int

func (s stamp) String() string { return "stamp" }

func TestJSON_Run(t *testing.T) {
	w := httptest.NewRecorder()
	r := NewJSON(w, httptest.NewRequest(http.MethodGet, "/", nil))

	r.SetData(map[string]any{"id": 1, "name": "ada"})
	require.NoError(t, r.Run())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1,"name":"ada"}`, w.Body.String())
}

func TestJSON_NilData(t *testing.T) {
	w := httptest.NewRecorder()
	r := NewJSON(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, r.Run())
	assert.Equal(t, "null", w.Body.String())
}

func TestJSON_MarshalFailureWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	r := NewJSON(w, httptest.NewRequest(http.MethodGet, "/", nil))

	r.SetData(make(chan int))
	assert.Error(t, r.Run())
	assert.Empty(t, w.Body.String())
}

func TestText_Run(t *testing.T) {
	cases := []struct {
		data any
		want string
	}{
		{nil, ""},
		{"hello", "hello"},
		{[]byte("raw"), "raw"},
		{stamp(0), "stamp"},
		{42, "42"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r := NewText(w, httptest.NewRequest(http.MethodGet, "/", nil))
		r.SetData(tc.data)
		require.NoError(t, r.Run())
		assert.Equal(t, tc.want, w.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	}
}

func TestRenderer_AppliesCORS(t *testing.T) {
	policy := cors.New(cors.Options{AllowedOrigins: []string{"https://example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()

	r := NewJSON(w, req)
	r.SetCORS(policy)
	r.SetData("ok")
	require.NoError(t, r.Run())

	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRenderer_NoCORSWithoutPolicy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()

	r := NewText(w, req)
	r.SetData("ok")
	require.NoError(t, r.Run())

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestByName(t *testing.T) {
	f, err := ByName("JSON")
	require.NoError(t, err)
	assert.IsType(t, &jsonRenderer{}, f(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))

	f, err = ByName("text")
	require.NoError(t, err)
	assert.IsType(t, &textRenderer{}, f(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))

	_, err = ByName("xml")
	assert.Error(t, err)
}
