package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// userKey is the request-locals slot holding the resolved *models.User.
const userKey = "user"

// UserLoader resolves a token subject to a live account.
type UserLoader interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// Protect verifies the bearer token and threads the fresh user into the
// request locals. Only HS256 is accepted. A valid token whose subject no
// longer resolves (deleted or deactivated account) is still a 401.
func Protect(secret string, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return apperr.Unauthenticated("please log in first")
		}

		tokenStr := strings.TrimSpace(auth[7:])
		var claims jwt.RegisteredClaims

		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, errors.New("unsupported signing method")
				}
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return apperr.Unauthenticated("your token has expired, please log in again")
			}
			return apperr.Unauthenticated("invalid token, please log in again")
		}
		if !token.Valid || claims.Subject == "" {
			return apperr.Unauthenticated("invalid token, please log in again")
		}

		uid, err := bson.ObjectIDFromHex(claims.Subject)
		if err != nil {
			return apperr.Unauthenticated("invalid token, please log in again")
		}

		user, err := users.FindByID(c.Context(), uid)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return apperr.Unauthenticated("this user no longer exists")
			}
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// RestrictTo permits only the given roles; it must run after Protect.
func RestrictTo(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := CurrentUser(c)
		if err != nil {
			return err
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return apperr.Forbidden("you do not have permission to perform this action")
	}
}

// CurrentUser returns the identity Protect resolved for this request.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, _ := c.Locals(userKey).(*models.User)
	if user == nil {
		return nil, apperr.Unauthenticated("please log in first")
	}
	return user, nil
}
