package di

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userID int64

func TestBindArgs_ByName(t *testing.T) {
	params := []Param{
		{Name: "id", Type: reflect.TypeOf(0), Index: 0},
		{Name: "name", Type: reflect.TypeOf(""), Index: 1},
		{Name: "ratio", Type: reflect.TypeOf(0.0), Index: 2},
		{Name: "ok", Type: reflect.TypeOf(false), Index: 3},
		{Name: "user", Type: reflect.TypeOf(userID(0)), Index: 4},
		{Name: "count", Type: reflect.TypeOf(uint8(0)), Index: 5},
	}

	args, err := BindArgs(params, map[string]any{
		"ok":    "true",
		"name":  "ada",
		"id":    "42",
		"ratio": 3,
		"user":  7,
		"count": "9",
		"extra": "ignored",
	})
	require.NoError(t, err)
	require.Len(t, args, 6)

	assert.Equal(t, 42, args[0].Interface())
	assert.Equal(t, "ada", args[1].Interface())
	assert.Equal(t, 3.0, args[2].Interface())
	assert.Equal(t, true, args[3].Interface())
	assert.Equal(t, userID(7), args[4].Interface())
	assert.Equal(t, uint8(9), args[5].Interface())
}

func TestBindArgs_Failures(t *testing.T) {
	intParam := []Param{{Name: "id", Type: reflect.TypeOf(0)}}

	_, err := BindArgs(intParam, map[string]any{})
	assert.True(t, errors.Is(err, ErrMissingArgument))

	_, err = BindArgs(intParam, map[string]any{"id": "forty-two"})
	assert.True(t, errors.Is(err, ErrArgumentType))

	_, err = BindArgs(intParam, map[string]any{"id": nil})
	assert.True(t, errors.Is(err, ErrArgumentType))

	_, err = BindArgs(intParam, map[string]any{"id": []int{1}})
	assert.True(t, errors.Is(err, ErrArgumentType))

	ptrParam := []Param{{Name: "h", Type: reflect.TypeOf(&handler{})}}
	args, err := BindArgs(ptrParam, map[string]any{"h": nil})
	require.NoError(t, err)
	assert.True(t, args[0].IsNil())
}

func TestCall_FoldsResults(t *testing.T) {
	boom := errors.New("boom")

	data, err := Call(reflect.ValueOf(func() {}), nil)
	assert.NoError(t, err)
	assert.Nil(t, data)

	data, err = Call(reflect.ValueOf(func() string { return "x" }), nil)
	assert.NoError(t, err)
	assert.Equal(t, "x", data)

	data, err = Call(reflect.ValueOf(func() error { return boom }), nil)
	assert.Equal(t, boom, err)
	assert.Nil(t, data)

	data, err = Call(reflect.ValueOf(func() (int, error) { return 3, nil }), nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, data)

	_, err = Call(reflect.ValueOf(func() (int, error) { return 0, boom }), nil)
	assert.Equal(t, boom, err)
}

func TestInvoke(t *testing.T) {
	reg := graphRegistry(t)
	params, err := reg.MethodParams("Handler", "Show")
	require.NoError(t, err)

	data, err := Invoke(&handler{}, "Show", params, map[string]any{"svc": &service{}, "id": "1", "name": "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada", data)

	_, err = Invoke(&handler{}, "Nope", nil, nil)
	assert.True(t, errors.Is(err, ErrMethodNotFound))

	_, err = Invoke(&handler{}, "Show", params, map[string]any{"id": "1", "name": "ada"})
	assert.True(t, errors.Is(err, ErrMissingArgument))
}

func TestCallFunc(t *testing.T) {
	raw := map[string]any{"id": "5", "name": "ada"}

	var got map[string]any
	data, err := CallFunc(func(p map[string]any) any { got = p; return "raw" }, raw)
	require.NoError(t, err)
	assert.Equal(t, "raw", data)
	assert.Equal(t, raw, got)

	data, err = CallFunc(func() string { return "plain" }, raw)
	require.NoError(t, err)
	assert.Equal(t, "plain", data)

	data, err = CallFunc(NewFunc(func(id int, name string) string { return name }, "id", "name"), raw)
	require.NoError(t, err)
	assert.Equal(t, "ada", data)

	_, err = CallFunc(NewFunc(func(id int) int { return id }, "id", "extra"), raw)
	assert.True(t, errors.Is(err, ErrUnsatisfiedParameter))

	_, err = CallFunc(func(id int) int { return id }, raw)
	assert.True(t, errors.Is(err, ErrUnsatisfiedParameter))

	_, err = CallFunc("HomeController@index", raw)
	assert.True(t, errors.Is(err, ErrNotInvocable))

	_, err = CallFunc(nil, raw)
	assert.True(t, errors.Is(err, ErrNotInvocable))
}

func TestIsInvocable(t *testing.T) {
	assert.True(t, IsInvocable(func() {}))
	assert.True(t, IsInvocable(NewFunc(func(int) {}, "id")))
	assert.False(t, IsInvocable("HomeController@index"))
	assert.False(t, IsInvocable(nil))
	assert.False(t, IsInvocable(42))
}
