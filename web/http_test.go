package web_test

import (
	"net/http"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/kernel/web"
)

func TestMethods(t *testing.T) {
	t.Parallel()

	methods := web.Methods()
	assert.Len(t, methods, 8)

	for _, m := range []string{
		http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodPatch,
	} {
		assert.Contains(t, methods, web.Method(m))
	}
}

func TestStatuses(t *testing.T) {
	t.Parallel()

	t.Run("groups", func(t *testing.T) {
		t.Parallel()

		tests := map[string]struct {
			statuses []web.Status
			min, max int
		}{
			"informational": {web.Informational(), 100, 199},
			"successful":    {web.Successful(), 200, 299},
			"redirections":  {web.Redirections(), 300, 399},
			"client errors": {web.ClientErrors(), 400, 499},
			"server errors": {web.ServerErrors(), 500, 599},
		}

		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				for _, s := range tt.statuses {
					assert.GreaterOrEqual(t, int(s), tt.min)
					assert.LessOrEqual(t, int(s), tt.max)
				}
			})
		}
	})

	t.Run("informational is empty", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, web.Informational())
		assert.Empty(t, web.Informational())
	})

	t.Run("all", func(t *testing.T) {
		t.Parallel()

		all := web.Statuses()
		assert.Len(t, all, 11)
		assert.True(t, slices.IsSorted(all))
		assert.Contains(t, all, web.StatusUnprocessableEntity)
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Not Found", web.StatusNotFound.String())
	})
}
