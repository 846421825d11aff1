package apperr

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		code int
	}{
		{BadRequest("bad"), fiber.StatusBadRequest},
		{Unauthenticated("who"), fiber.StatusUnauthorized},
		{Forbidden("no"), fiber.StatusForbidden},
		{NotFound("gone"), fiber.StatusNotFound},
		{Conflict("dup"), fiber.StatusConflict},
		{Upstream("down", errors.New("dial")), fiber.StatusInternalServerError},
		{Internal(errors.New("boom")), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Status())
	}
}

func TestOperational(t *testing.T) {
	assert.True(t, NotFound("x").Operational())
	assert.True(t, Upstream("down", nil).Operational())
	assert.False(t, Internal(errors.New("boom")).Operational())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindConflict, KindOf(errorWrap(Conflict("dup"))))
}

func errorWrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ inner error }

func (w *wrapped) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrapped) Unwrap() error { return w.inner }

func newTestApp(dev bool) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{ErrorHandler: Handler(dev, log)})
	app.Get("/operational", func(c *fiber.Ctx) error {
		return NotFound("article with id 'abc' not found")
	})
	app.Get("/unknown", func(c *fiber.Ctx) error {
		return errors.New("cable unplugged at offset 0x7f")
	})
	return app
}

func body(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.NewDecoder(resp).Decode(&out))
	return out
}

func TestHandlerOperationalError(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(httptest.NewRequest("GET", "/operational", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	b := body(t, resp.Body)
	assert.Equal(t, "fail", b["status"])
	assert.Equal(t, "article with id 'abc' not found", b["message"])
}

func TestHandlerHidesInternalsInProduction(t *testing.T) {
	app := newTestApp(false)

	resp, err := app.Test(httptest.NewRequest("GET", "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	b := body(t, resp.Body)
	assert.Equal(t, "error", b["status"])
	assert.Equal(t, "something went wrong", b["message"])
	assert.NotContains(t, b, "error")
}

func TestHandlerShowsDetailInDevelopment(t *testing.T) {
	app := newTestApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	b := body(t, resp.Body)
	assert.Contains(t, b["error"], "cable unplugged")
}

func TestHandlerMapsFiberErrors(t *testing.T) {
	app := newTestApp(false)
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "no such route entity")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	b := body(t, resp.Body)
	assert.Equal(t, "no such route entity", b["message"])
}
