// Package web contains the transport independent contracts of an HTTP request and response,
// the adapters to the echo framework, and the controllers exposing the kernel use cases.
package web

import (
	"net/http"
	"net/url"
	"slices"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodHead    Method = http.MethodHead
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodDelete  Method = http.MethodDelete
	MethodConnect Method = http.MethodConnect
	MethodOptions Method = http.MethodOptions
	MethodPatch   Method = http.MethodPatch
)

func Methods() []Method {
	return []Method{
		MethodGet, MethodHead, MethodPost, MethodPut,
		MethodDelete, MethodConnect, MethodOptions, MethodPatch,
	}
}

// Status is an HTTP response status code.
type Status int

const (
	StatusOK                  Status = http.StatusOK
	StatusCreated             Status = http.StatusCreated
	StatusNoContent           Status = http.StatusNoContent
	StatusFound               Status = http.StatusFound
	StatusBadRequest          Status = http.StatusBadRequest
	StatusUnauthorized        Status = http.StatusUnauthorized
	StatusForbidden           Status = http.StatusForbidden
	StatusNotFound            Status = http.StatusNotFound
	StatusConflict            Status = http.StatusConflict
	StatusUnprocessableEntity Status = http.StatusUnprocessableEntity
	StatusInternalServerError Status = http.StatusInternalServerError
)

// Informational is empty, no 1xx status is supported.
func Informational() []Status {
	return []Status{}
}

func Successful() []Status {
	return []Status{StatusOK, StatusCreated, StatusNoContent}
}

func Redirections() []Status {
	return []Status{StatusFound}
}

func ClientErrors() []Status {
	return []Status{
		StatusBadRequest, StatusUnauthorized, StatusForbidden,
		StatusNotFound, StatusConflict, StatusUnprocessableEntity,
	}
}

func ServerErrors() []Status {
	return []Status{StatusInternalServerError}
}

// Statuses returns all supported statuses, ordered by code.
func Statuses() []Status {
	return slices.Concat(Informational(), Successful(), Redirections(), ClientErrors(), ServerErrors())
}

func (s Status) String() string {
	return http.StatusText(int(s))
}

// Request is an incoming HTTP request.
// It does not expose the underlying framework, so controllers can be tested without one.
type Request interface {
	URL() *url.URL
	// URI is the unmodified request target, including the query.
	URI() string
	Method() Method
	// Body can be called multiple times and always returns the full body.
	Body() []byte
	Headers() http.Header
	Cookies() []*http.Cookie
	Query() url.Values
	Form() url.Values
}

// Response is the outgoing answer to a Request.
type Response interface {
	Status() Status
	SetStatus(status Status)
	Headers() http.Header
	SetHeaders(headers http.Header)
	Cookies() []*http.Cookie
	SetCookies(cookies ...*http.Cookie)
}
