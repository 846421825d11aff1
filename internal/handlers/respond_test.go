package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
)

func newIDApp() *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(false, log)})
	app.Get("/articles/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(envelope(id.Hex()))
	})
	return app
}

func TestParamIDMalformed(t *testing.T) {
	app := newIDApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/articles/not-an-id", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "invalid id 'not-an-id'", body["message"])
}

func TestParamIDValidHex(t *testing.T) {
	app := newIDApp()
	id := bson.NewObjectID()

	resp, err := app.Test(httptest.NewRequest("GET", "/articles/"+id.Hex(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
