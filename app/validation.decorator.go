package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/go-arrower/kernel"
)

const CtxValidated kernel.CTXKey = "kernel.validated"

// ErrValidationFailed is returned by the validating decorators, wrapping the validator.ValidationErrors.
var ErrValidationFailed = errors.New("validation failed")

// PassedValidation reports, if the use case input in ctx was validated by one of the decorators.
// Use it to assert the decorator is set up, before a use case relies on valid input.
func PassedValidation(ctx context.Context) bool {
	if v, ok := ctx.Value(CtxValidated).(bool); ok {
		return v
	}

	return false
}

// defaultValidator is shared by all decorators created without a validator,
// so the struct tags of each input type are parsed once.
var defaultValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

type useCaseValidator struct {
	validate *validator.Validate
}

func newUseCaseValidator(validate *validator.Validate) useCaseValidator {
	if validate == nil {
		validate = defaultValidator()
	}

	return useCaseValidator{validate: validate}
}

// check returns ctx marked as validated, or an error naming the invalid input.
func (v useCaseValidator) check(ctx context.Context, in any) (context.Context, error) {
	if err := v.validate.Struct(in); err != nil {
		return ctx, fmt.Errorf("%w: %s: %w", ErrValidationFailed, commandName(in), err)
	}

	return context.WithValue(ctx, CtxValidated, true), nil
}

func NewValidatedRequest[Req any, Res any](validate *validator.Validate, req Request[Req, Res]) Request[Req, Res] {
	return &requestValidatingDecorator[Req, Res]{
		validator: newUseCaseValidator(validate),
		base:      req,
	}
}

type requestValidatingDecorator[Req any, Res any] struct {
	validator useCaseValidator
	base      Request[Req, Res]
}

func (d *requestValidatingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	ctx, err := d.validator.check(ctx, req)
	if err != nil {
		return *new(Res), err
	}

	return d.base.H(ctx, req) //nolint:wrapcheck // decorate but not change anything
}

func NewValidatedCommand[C any](validate *validator.Validate, cmd Command[C]) Command[C] {
	return &commandValidatingDecorator[C]{
		validator: newUseCaseValidator(validate),
		base:      cmd,
	}
}

type commandValidatingDecorator[C any] struct {
	validator useCaseValidator
	base      Command[C]
}

func (d *commandValidatingDecorator[C]) H(ctx context.Context, cmd C) error {
	ctx, err := d.validator.check(ctx, cmd)
	if err != nil {
		return err
	}

	return d.base.H(ctx, cmd) //nolint:wrapcheck // decorate but not change anything
}

func NewValidatedQuery[Q any, Res any](validate *validator.Validate, query Query[Q, Res]) Query[Q, Res] {
	return &queryValidatingDecorator[Q, Res]{
		validator: newUseCaseValidator(validate),
		base:      query,
	}
}

type queryValidatingDecorator[Q any, Res any] struct {
	validator useCaseValidator
	base      Query[Q, Res]
}

func (d *queryValidatingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	ctx, err := d.validator.check(ctx, query)
	if err != nil {
		return *new(Res), err
	}

	return d.base.H(ctx, query) //nolint:wrapcheck // decorate but not change anything
}
