package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/kernel/kv"
	"github.com/go-arrower/kernel/repository"
	"github.com/go-arrower/kernel/web"
)

var errBrokenBody = errors.New("broken body")

func TestKeyValueController_List(t *testing.T) {
	t.Parallel()

	data := map[string]any{"a": "1", "b": "2", "c": "3"}

	tests := map[string]struct {
		target string
		code   int
		body   string
	}{
		"all":            {"/kv", http.StatusOK, `{"data":[{"id":"a","value":"1"},{"id":"b","value":"2"},{"id":"c","value":"3"}]}`},
		"limit":          {"/kv?limit=1", http.StatusOK, `{"data":[{"id":"a","value":"1"}]}`},
		"limit & offset": {"/kv?limit=1&offset=2", http.StatusOK, `{"data":[{"id":"c","value":"3"}]}`},
		"invalid limit":  {"/kv?limit=abc", http.StatusBadRequest, `{"message":"invalid limit: abc"}`},
		"invalid offset": {"/kv?offset=1.5", http.StatusBadRequest, `{"message":"invalid offset: 1.5"}`},
		"negative page":  {"/kv?offset=-1", http.StatusUnprocessableEntity, ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e := newTestRouter(t, repository.Test(t, data), nil)

			rec := serve(e, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.code, rec.Code)

			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestKeyValueController_Get(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, repository.Test(t, map[string]any{"key": "val"}), nil)

	t.Run("existing key", func(t *testing.T) {
		t.Parallel()

		rec := serve(e, http.MethodGet, "/kv/key", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[{"id":"key","value":"val"}]}`, rec.Body.String())
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		rec := serve(e, http.MethodGet, "/kv/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestKeyValueController_Insert(t *testing.T) {
	t.Parallel()

	t.Run("insert", func(t *testing.T) {
		t.Parallel()

		repo := repository.Test(t, nil)
		e := newTestRouter(t, repo, nil)

		rec := serve(e, http.MethodPost, "/kv", strings.NewReader(`{"key":"key","value":{"nested":true}}`))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/kv/key", rec.Header().Get("Location"))
		assert.JSONEq(t, `{"data":[{"id":"key","value":{"nested":true}}]}`, rec.Body.String())

		repo.Contains("key")
	})

	t.Run("already exists", func(t *testing.T) {
		t.Parallel()

		repo := repository.Test(t, map[string]any{"key": "val"})
		e := newTestRouter(t, repo, nil)

		rec := serve(e, http.MethodPost, "/kv", strings.NewReader(`{"key":"key","value":"other"}`))
		assert.Equal(t, http.StatusConflict, rec.Code)
		repo.Total(1)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		repo := repository.Test(t, nil)
		e := newTestRouter(t, repo, nil)

		rec := serve(e, http.MethodPost, "/kv", strings.NewReader(`{"value":"val"}`))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		repo.Empty()
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		repo := repository.Test(t, nil)
		e := newTestRouter(t, repo, nil)

		rec := serve(e, http.MethodPost, "/kv", strings.NewReader(`{"key":`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		repo.Empty()
	})

	t.Run("body can not be read", func(t *testing.T) {
		t.Parallel()

		repo := repository.Test(t, nil)
		e := newTestRouter(t, repo, nil)

		rec := serve(e, http.MethodPost, "/kv", io.MultiReader(strings.NewReader(`{"key":"k"`), iotest.ErrReader(errBrokenBody)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"could not read body"}`, rec.Body.String())
		repo.Empty()
	})
}

func TestKeyValueController_EscapedKeys(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key      string
		location string
	}{
		"slash":   {"a/b", "/kv/a%2Fb"},
		"space":   {"a b", "/kv/a%20b"},
		"percent": {"100%", "/kv/100%25"},
		"unicode": {"schlüssel", "/kv/schl%C3%BCssel"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			repo := repository.Test(t, nil)
			e := newTestRouter(t, repo, nil)

			body, _ := json.Marshal(kv.InsertCommand{Key: tt.key, Value: "val"})
			rec := serve(e, http.MethodPost, "/kv", bytes.NewReader(body))
			assert.Equal(t, http.StatusCreated, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get(echo.HeaderLocation))
			repo.Contains(tt.key)

			// the location can be followed
			rec = serve(e, http.MethodGet, rec.Header().Get(echo.HeaderLocation), nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"value":"val"`)

			rec = serve(e, http.MethodPut, tt.location, strings.NewReader(`{"value":"new"}`))
			assert.Equal(t, http.StatusOK, rec.Code)
			updated, ok, err := repo.GetOne(context.Background(), tt.key)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "new", updated.Value)

			rec = serve(e, http.MethodDelete, tt.location, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"data":[{"deleted":true}]}`, rec.Body.String())
			repo.Empty()
		})
	}

	t.Run("invalid escape", func(t *testing.T) {
		t.Parallel()

		e := newTestRouter(t, repository.Test(t, nil), nil)

		req := httptest.NewRequest(http.MethodGet, "/kv/a%2F", nil)
		req.URL.RawPath = "/kv/a%2F%zz" // %zz is no valid escape

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestKeyValueController_Update(t *testing.T) {
	t.Parallel()

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		repo := repository.Test(t, map[string]any{"key": "val"})
		e := newTestRouter(t, repo, nil)

		rec := serve(e, http.MethodPut, "/kv/key", strings.NewReader(`{"value":"new"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[{"id":"key","value":"new"}]}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		repo := repository.Test(t, nil)
		e := newTestRouter(t, repo, nil)

		rec := serve(e, http.MethodPut, "/kv/key", strings.NewReader(`{"value":"new"}`))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		repo.Empty()
	})
}

func TestKeyValueController_Delete(t *testing.T) {
	t.Parallel()

	repo := repository.Test(t, map[string]any{"key": "val"})
	e := newTestRouter(t, repo, nil)

	rec := serve(e, http.MethodDelete, "/kv/key", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"deleted":true}]}`, rec.Body.String())
	repo.Empty()

	rec = serve(e, http.MethodDelete, "/kv/key", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"deleted":false}]}`, rec.Body.String())
}

func TestKeyValueController_Env(t *testing.T) {
	t.Parallel()

	e := newTestRouter(t, repository.Test(t, nil), map[string]string{"HOME": "/root", "SHELL": "/bin/sh"})

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		rec := serve(e, http.MethodGet, "/env?limit=1", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"`)
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		rec := serve(e, http.MethodGet, "/env/HOME", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[{"id":"HOME","value":"/root"}]}`, rec.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		rec := serve(e, http.MethodGet, "/env/MISSING", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("read only", func(t *testing.T) {
		t.Parallel()

		rec := serve(e, http.MethodPost, "/env", strings.NewReader(`{"key":"key"}`))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestKeyValueController_RegisterViewRoutes(t *testing.T) {
	t.Parallel()

	e := echo.New()
	logs := repository.Test(t, map[string]any{"01J": "started"})

	controller := web.NewKeyValueController(nil, kv.NewApp(repository.Test(t, nil)), kv.NewViewApp(logs))
	controller.RegisterViewRoutes(e.Group(""), "/logs", kv.NewViewApp(logs))

	rec := serve(e, http.MethodGet, "/logs/01J", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"id":"01J","value":"started"}]}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/logs", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/logs", e.Reverse("logs.list"))
}
