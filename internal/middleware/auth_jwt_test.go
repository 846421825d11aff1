package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

const testSecret = "test-secret"

type stubLoader struct {
	users map[bson.ObjectID]*models.User
}

func (s *stubLoader) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user with id '%s' not found", id.Hex())
}

func signTestToken(t *testing.T, secret string, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthApp(loader UserLoader) *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(false, log)})
	app.Get("/private", Protect(testSecret, loader), func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": user.ID.Hex()})
	})
	app.Get("/admin", Protect(testSecret, loader), RestrictTo(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestProtectHappyPath(t *testing.T) {
	user := &models.User{ID: bson.NewObjectID(), Role: models.RoleUser, Active: true}
	app := newAuthApp(&stubLoader{users: map[bson.ObjectID]*models.User{user.ID: user}})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, user.ID.Hex(), time.Hour))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectMissingHeader(t *testing.T) {
	app := newAuthApp(&stubLoader{})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectGarbageToken(t *testing.T) {
	app := newAuthApp(&stubLoader{})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectWrongSecret(t *testing.T) {
	user := &models.User{ID: bson.NewObjectID()}
	app := newAuthApp(&stubLoader{users: map[bson.ObjectID]*models.User{user.ID: user}})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "other-secret", user.ID.Hex(), time.Hour))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectExpiredToken(t *testing.T) {
	user := &models.User{ID: bson.NewObjectID()}
	app := newAuthApp(&stubLoader{users: map[bson.ObjectID]*models.User{user.ID: user}})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, user.ID.Hex(), -time.Hour))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectUnknownPrincipal(t *testing.T) {
	// Token is valid but the account is gone (deleted or deactivated).
	app := newAuthApp(&stubLoader{})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, bson.NewObjectID().Hex(), time.Hour))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRestrictTo(t *testing.T) {
	user := &models.User{ID: bson.NewObjectID(), Role: models.RoleUser}
	admin := &models.User{ID: bson.NewObjectID(), Role: models.RoleAdmin}
	app := newAuthApp(&stubLoader{users: map[bson.ObjectID]*models.User{
		user.ID:  user,
		admin.ID: admin,
	}})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, user.ID.Hex(), time.Hour))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, admin.ID.Hex(), time.Hour))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
