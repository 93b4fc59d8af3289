package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/kernel/app"
)

var _ Request = (*EchoRequest)(nil)

// NewEchoRequest adapts the request of c.
func NewEchoRequest(c echo.Context) *EchoRequest {
	return &EchoRequest{c: c, once: &sync.Once{}}
}

type EchoRequest struct {
	c echo.Context

	once *sync.Once
	body []byte
	err  error
}

func (r *EchoRequest) URL() *url.URL {
	return r.c.Request().URL
}

func (r *EchoRequest) URI() string {
	return r.c.Request().RequestURI
}

func (r *EchoRequest) Method() Method {
	return Method(r.c.Request().Method)
}

// Body reads the body once and puts it back into the request,
// so echo's binders can still read it.
// If reading fails, Body returns what was read until then and Err reports the failure.
func (r *EchoRequest) Body() []byte {
	r.once.Do(func() {
		req := r.c.Request()
		if req.Body == nil {
			return
		}

		r.body, r.err = io.ReadAll(req.Body)
		_ = req.Body.Close()

		if r.err != nil {
			r.err = fmt.Errorf("could not read body: %w", r.err)
		}

		req.Body = io.NopCloser(bytes.NewReader(r.body))
	})

	return r.body
}

// Err returns the error of reading the body, if any.
func (r *EchoRequest) Err() error {
	return r.err
}

func (r *EchoRequest) Headers() http.Header {
	return r.c.Request().Header
}

func (r *EchoRequest) Cookies() []*http.Cookie {
	return r.c.Cookies()
}

func (r *EchoRequest) Query() url.Values {
	return r.c.QueryParams()
}

// Form returns no values, if the form can not be parsed.
func (r *EchoRequest) Form() url.Values {
	form, err := r.c.FormParams()
	if err != nil {
		return url.Values{}
	}

	return form
}

var _ Response = (*EchoResponse[any])(nil)

// NewEchoResponse returns a successful Response carrying data.
func NewEchoResponse[E any](data ...E) *EchoResponse[E] {
	return &EchoResponse[E]{
		Output:  app.NewOutput(data...),
		status:  StatusOK,
		headers: http.Header{},
		cookies: []*http.Cookie{},
	}
}

// EchoResponse renders its app.Output as JSON.
type EchoResponse[E any] struct {
	app.Output[E]

	status  Status
	headers http.Header
	cookies []*http.Cookie
}

func (r *EchoResponse[E]) Status() Status {
	return r.status
}

func (r *EchoResponse[E]) SetStatus(status Status) {
	r.status = status
}

func (r *EchoResponse[E]) Headers() http.Header {
	return r.headers
}

func (r *EchoResponse[E]) SetHeaders(headers http.Header) {
	if headers == nil {
		headers = http.Header{}
	}

	r.headers = headers
}

func (r *EchoResponse[E]) Cookies() []*http.Cookie {
	return r.cookies
}

func (r *EchoResponse[E]) SetCookies(cookies ...*http.Cookie) {
	r.cookies = cookies
}

// Send writes the response to c.
// A StatusNoContent response has no body.
func (r *EchoResponse[E]) Send(c echo.Context) error {
	for key, values := range r.headers {
		for _, v := range values {
			c.Response().Header().Add(key, v)
		}
	}

	for _, cookie := range r.cookies {
		c.SetCookie(cookie)
	}

	if r.status == StatusNoContent {
		return c.NoContent(int(r.status)) //nolint:wrapcheck // return the echo error unchanged
	}

	if err := c.JSON(int(r.status), r.Output); err != nil {
		return fmt.Errorf("could not send response: %w", err)
	}

	return nil
}
