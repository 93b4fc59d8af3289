package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/kernel/alog"
	"github.com/go-arrower/kernel/app"
	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/kv"
	"github.com/go-arrower/kernel/repository"
)

func NewKeyValueController(logger alog.Logger, kvApp kv.App, envApp kv.ViewApp) *KeyValueController {
	if logger == nil {
		logger = alog.NewNoopLogger()
	}

	return &KeyValueController{
		logger: logger,
		kv:     kvApp,
		env:    envApp,
	}
}

// KeyValueController exposes the key values of the store under /kv and
// the process environment, read only, under /env.
type KeyValueController struct {
	logger alog.Logger

	kv  kv.App
	env kv.ViewApp
}

func (kc *KeyValueController) RegisterRoutes(r *echo.Group) {
	r.GET("/kv", kc.List()).Name = "kv.list"
	r.POST("/kv", kc.Insert()).Name = "kv.insert"
	r.GET("/kv/:key", kc.Get()).Name = "kv.get"
	r.PUT("/kv/:key", kc.Update()).Name = "kv.update"
	r.DELETE("/kv/:key", kc.Delete()).Name = "kv.delete"

	r.GET("/env", kc.ListEnv()).Name = "env.list"
	r.GET("/env/:key", kc.GetEnv()).Name = "env.get"
}

// RegisterViewRoutes exposes any other read only key values under path.
func (kc *KeyValueController) RegisterViewRoutes(r *echo.Group, path string, view kv.ViewApp) {
	name := strings.Trim(path, "/")

	r.GET(path, kc.list(view.List)).Name = name + ".list"
	r.GET(path+"/:key", kc.get(view.Get)).Name = name + ".get"
}

func (kc *KeyValueController) List() func(c echo.Context) error {
	return kc.list(kc.kv.List)
}

func (kc *KeyValueController) ListEnv() func(c echo.Context) error {
	return kc.list(kc.env.List)
}

func (kc *KeyValueController) Get() func(c echo.Context) error {
	return kc.get(kc.kv.Get)
}

func (kc *KeyValueController) GetEnv() func(c echo.Context) error {
	return kc.get(kc.env.Get)
}

func (kc *KeyValueController) Insert() func(c echo.Context) error {
	return func(c echo.Context) error {
		var cmd kv.InsertCommand

		body, err := kc.body(c)
		if err != nil {
			return err
		}

		if err := json.Unmarshal(body, &cmd); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid key value").SetInternal(err)
		}

		if err := kc.kv.Insert.H(c.Request().Context(), cmd); err != nil {
			return kc.httpError(c, err)
		}

		res := NewEchoResponse(entity.NewKeyValue(cmd.Key, cmd.Value))
		res.SetStatus(StatusCreated)
		res.Headers().Set(echo.HeaderLocation, c.Echo().Reverse("kv.get", url.PathEscape(cmd.Key)))

		return res.Send(c)
	}
}

func (kc *KeyValueController) Update() func(c echo.Context) error {
	return func(c echo.Context) error {
		key, err := keyParam(c)
		if err != nil {
			return err
		}

		body, err := kc.body(c)
		if err != nil {
			return err
		}

		update := struct {
			Value any `json:"value"`
		}{}

		if err := json.Unmarshal(body, &update); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid value").SetInternal(err)
		}

		cmd := kv.UpdateCommand{Key: key, Value: update.Value}
		if err := kc.kv.Update.H(c.Request().Context(), cmd); err != nil {
			return kc.httpError(c, err)
		}

		return NewEchoResponse(entity.NewKeyValue(cmd.Key, cmd.Value)).Send(c)
	}
}

func (kc *KeyValueController) Delete() func(c echo.Context) error {
	return func(c echo.Context) error {
		key, err := keyParam(c)
		if err != nil {
			return err
		}

		res, err := kc.kv.Delete.H(c.Request().Context(), kv.DeleteCommand{Key: key})
		if err != nil {
			return kc.httpError(c, err)
		}

		return NewEchoResponse(res).Send(c)
	}
}

func (kc *KeyValueController) list(query app.Query[kv.ListQuery, app.Output[entity.KeyValue]]) func(c echo.Context) error {
	return func(c echo.Context) error {
		var limit, offset int

		err := echo.QueryParamsBinder(c).
			Int("limit", &limit).
			Int("offset", &offset).
			BindError()
		if err != nil {
			return bindError(err)
		}

		out, err := query.H(c.Request().Context(), kv.ListQuery{Limit: limit, Offset: offset})
		if err != nil {
			return kc.httpError(c, err)
		}

		return NewEchoResponse(out.Data...).Send(c)
	}
}

func (kc *KeyValueController) get(query app.Query[kv.GetQuery, app.Output[entity.KeyValue]]) func(c echo.Context) error {
	return func(c echo.Context) error {
		key, err := keyParam(c)
		if err != nil {
			return err
		}

		out, err := query.H(c.Request().Context(), kv.GetQuery{Key: key})
		if err != nil {
			return kc.httpError(c, err)
		}

		return NewEchoResponse(out.Data...).Send(c)
	}
}

// keyParam returns the unescaped :key of the path.
// echo matches on the raw path, if the request has one, so the param is still escaped then.
func keyParam(c echo.Context) (string, error) {
	key := c.Param("key")
	if c.Request().URL.RawPath == "" {
		return key, nil
	}

	unescaped, err := url.PathUnescape(key)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid key: "+key).SetInternal(err)
	}

	return unescaped, nil
}

func bindError(err error) error {
	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		msg := fmt.Sprintf("invalid %s: %s", bindErr.Field, strings.Join(bindErr.Values, ","))
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	}

	return echo.NewHTTPError(http.StatusBadRequest, "invalid query").SetInternal(err)
}

func (kc *KeyValueController) body(c echo.Context) ([]byte, error) {
	req := NewEchoRequest(c)

	body := req.Body()
	if err := req.Err(); err != nil {
		kc.logger.Debug(c.Request().Context(), "could not read request body",
			"path", c.Path(),
			"error", err.Error(),
		)

		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read body").SetInternal(err)
	}

	return body, nil
}

func (kc *KeyValueController) httpError(c echo.Context, err error) error {
	httpErr := httpError(err)

	kc.logger.Debug(c.Request().Context(), "request failed",
		"path", c.Path(),
		"status", httpErr.Code,
		"error", err.Error(),
	)

	return httpErr
}

// httpError maps the errors of the use cases to an HTTP status.
func httpError(err error) *echo.HTTPError {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		code = http.StatusConflict
	case errors.Is(err, app.ErrValidationFailed):
		code = http.StatusUnprocessableEntity
	}

	msg := http.StatusText(code)
	if code != http.StatusInternalServerError {
		msg = err.Error()
	}

	return echo.NewHTTPError(code, msg).SetInternal(err)
}
