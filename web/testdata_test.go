package web_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/kernel/alog"
	"github.com/go-arrower/kernel/kv"
	"github.com/go-arrower/kernel/repository"
	"github.com/go-arrower/kernel/web"
)

// newTestRouter is a helper for unit tests, by returning a router serving the key values of repo
// and the environment env.
func newTestRouter(t *testing.T, repo *repository.TestRepository, env map[string]string) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HideBanner = true

	envRepo := repository.NewEnvRepository(repository.WithEnvironment(env))

	controller := web.NewKeyValueController(alog.Test(t), kv.NewApp(repo), kv.NewViewApp(envRepo))
	controller.RegisterRoutes(e.Group(""))

	return e
}

func serve(e *echo.Echo, method string, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

