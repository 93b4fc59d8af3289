package app

import (
	"context"
	"errors"
)

//
// This file contains convenience helpers you can use to easier test
// your calling code relying on this usecase pattern.
//

var ErrUseCaseFailed = errors.New("usecase failed")

// TestSuccessRequestHandler returns a Request that always succeeds with the zero value of Res.
func TestSuccessRequestHandler[Req any, Res any]() Request[Req, Res] {
	return RequestFunc[Req, Res](func(_ context.Context, _ Req) (Res, error) {
		var result Res

		return result, nil
	})
}

// TestFailureRequestHandler returns a Request that always fails with ErrUseCaseFailed.
func TestFailureRequestHandler[Req any, Res any]() Request[Req, Res] {
	return RequestFunc[Req, Res](func(_ context.Context, _ Req) (Res, error) {
		var result Res

		return result, ErrUseCaseFailed
	})
}

// TestSuccessCommandHandler returns a Command that always succeeds.
func TestSuccessCommandHandler[C any]() Command[C] {
	return CommandFunc[C](func(_ context.Context, _ C) error {
		return nil
	})
}

// TestFailureCommandHandler returns a Command that always fails with ErrUseCaseFailed.
func TestFailureCommandHandler[C any]() Command[C] {
	return CommandFunc[C](func(_ context.Context, _ C) error {
		return ErrUseCaseFailed
	})
}

// TestSuccessQueryHandler returns a Query that always succeeds with the zero value of Res.
func TestSuccessQueryHandler[Q any, Res any]() Query[Q, Res] {
	return QueryFunc[Q, Res](func(_ context.Context, _ Q) (Res, error) {
		var result Res

		return result, nil
	})
}

// TestFailureQueryHandler returns a Query that always fails with ErrUseCaseFailed.
func TestFailureQueryHandler[Q any, Res any]() Query[Q, Res] {
	return QueryFunc[Q, Res](func(_ context.Context, _ Q) (Res, error) {
		var result Res

		return result, ErrUseCaseFailed
	})
}
