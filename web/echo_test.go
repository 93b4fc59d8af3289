package web_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/kernel/web"
)

func TestEchoRequest(t *testing.T) {
	t.Parallel()

	t.Run("read request", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/kv?limit=10", strings.NewReader(`{"key":"k"}`))
		req.Header.Set("X-Test", "header")
		req.AddCookie(&http.Cookie{Name: "session", Value: "abc"})

		c := echo.New().NewContext(req, httptest.NewRecorder())
		r := web.NewEchoRequest(c)

		assert.Equal(t, "/kv", r.URL().Path)
		assert.Equal(t, "/kv?limit=10", r.URI())
		assert.Equal(t, web.MethodPost, r.Method())
		assert.Equal(t, "header", r.Headers().Get("X-Test"))
		assert.Equal(t, "10", r.Query().Get("limit"))
		assert.Len(t, r.Cookies(), 1)
		assert.Equal(t, "abc", r.Cookies()[0].Value)
	})

	t.Run("body can be read multiple times", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"key":"k"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		c := echo.New().NewContext(req, httptest.NewRecorder())
		r := web.NewEchoRequest(c)

		assert.Equal(t, `{"key":"k"}`, string(r.Body()))
		assert.Equal(t, `{"key":"k"}`, string(r.Body()))

		body := struct {
			Key string `json:"key"`
		}{}
		assert.NoError(t, c.Bind(&body))
		assert.Equal(t, "k", body.Key)
	})

	t.Run("body read error", func(t *testing.T) {
		t.Parallel()

		errRead := errors.New("connection reset")
		req := httptest.NewRequest(http.MethodPost, "/", io.MultiReader(strings.NewReader("part"), iotest.ErrReader(errRead)))

		r := web.NewEchoRequest(echo.New().NewContext(req, httptest.NewRecorder()))

		assert.Equal(t, "part", string(r.Body()))
		assert.ErrorIs(t, r.Err(), errRead)
	})

	t.Run("form", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("key=k&value=v"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

		r := web.NewEchoRequest(echo.New().NewContext(req, httptest.NewRecorder()))

		assert.Equal(t, "k", r.Form().Get("key"))
		assert.Equal(t, "v", r.Form().Get("value"))
	})
}

func TestEchoResponse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		res := web.NewEchoResponse[string]()

		assert.Equal(t, web.StatusOK, res.Status())
		assert.Empty(t, res.Headers())
		assert.Empty(t, res.Cookies())
		assert.Equal(t, 0, res.Len())
	})

	t.Run("send", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		res := web.NewEchoResponse("a", "b")
		res.SetStatus(web.StatusCreated)
		res.SetHeaders(http.Header{"X-Test": []string{"header"}})
		res.SetCookies(&http.Cookie{Name: "session", Value: "abc"})

		assert.NoError(t, res.Send(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "header", rec.Header().Get("X-Test"))
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "session=abc")
		assert.JSONEq(t, `{"data":["a","b"]}`, rec.Body.String())
	})

	t.Run("no content", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		res := web.NewEchoResponse("a")
		res.SetStatus(web.StatusNoContent)

		assert.NoError(t, res.Send(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("no data", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		assert.NoError(t, web.NewEchoResponse[int]().Send(c))
		assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
	})
}
