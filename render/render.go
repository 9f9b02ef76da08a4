// Package render turns a dispatch result into an HTTP response.
package render

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// Renderer receives the invocation result of one request and writes it out.
// SetCORS, when called, always precedes SetData.
type Renderer interface {
	SetCORS(policy *cors.Cors)
	SetData(data any)
	Run() error
}

// Factory builds the renderer for one request.
type Factory func(w http.ResponseWriter, r *http.Request) Renderer

// ByName selects a built-in renderer.
func ByName(name string) (Factory, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return NewJSON, nil
	case "text":
		return NewText, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", name)
	}
}

type base struct {
	w    http.ResponseWriter
	r    *http.Request
	cors *cors.Cors
	data any
}

func (b *base) SetCORS(policy *cors.Cors) { b.cors = policy }
func (b *base) SetData(data any)          { b.data = data }

func (b *base) applyCORS() {
	if b.cors != nil {
		b.cors.HandlerFunc(b.w, b.r)
	}
}

type jsonRenderer struct{ base }

// NewJSON writes the result as application/json; nil data is written as null.
func NewJSON(w http.ResponseWriter, r *http.Request) Renderer {
	return &jsonRenderer{base{w: w, r: r}}
}

func (j *jsonRenderer) Run() error {
	body, err := json.Marshal(j.data)
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}

	j.applyCORS()
	j.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	j.w.WriteHeader(http.StatusOK)
	_, err = j.w.Write(body)
	return err
}

type textRenderer struct{ base }

// NewText writes the result as text/plain. Byte slices and strings are
// written verbatim, nil as an empty body, anything else through fmt.
func NewText(w http.ResponseWriter, r *http.Request) Renderer {
	return &textRenderer{base{w: w, r: r}}
}

func (t *textRenderer) Run() error {
	var body []byte
	switch v := t.data.(type) {
	case nil:
	case []byte:
		body = v
	case string:
		body = []byte(v)
	case fmt.Stringer:
		body = []byte(v.String())
	default:
		body = []byte(fmt.Sprintf("%v", v))
	}

	t.applyCORS()
	t.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	t.w.WriteHeader(http.StatusOK)
	_, err := t.w.Write(body)
	return err
}
