package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// statusWord follows the envelope convention: 4xx -> "fail", 5xx -> "error".
func statusWord(code int) string {
	if code >= 500 {
		return "error"
	}
	return "fail"
}

// Handler is the single top-level error responder wired into fiber.Config.
// In development it returns the underlying detail; otherwise only operational
// messages leave the process and everything unclassified becomes a logged 500.
func Handler(dev bool, log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ae := classify(err)

		code := ae.Status()
		body := fiber.Map{
			"status":  statusWord(code),
			"message": ae.Message,
		}

		if dev {
			if ae.Err != nil {
				body["error"] = ae.Err.Error()
			}
			return c.Status(code).JSON(body)
		}

		if !ae.Operational() {
			log.WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).WithError(err).Error("unhandled error")
			body["message"] = "something went wrong"
		}
		return c.Status(code).JSON(body)
	}
}

func classify(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind := KindInternal
		switch fe.Code {
		case fiber.StatusBadRequest:
			kind = KindBadRequest
		case fiber.StatusUnauthorized:
			kind = KindUnauthenticated
		case fiber.StatusForbidden:
			kind = KindForbidden
		case fiber.StatusNotFound:
			kind = KindNotFound
		case fiber.StatusConflict:
			kind = KindConflict
		}
		if kind != KindInternal {
			return &Error{Kind: kind, Message: fe.Message}
		}
	}
	return Internal(err)
}
