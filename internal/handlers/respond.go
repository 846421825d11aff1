package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
)

// envelope wraps a single payload the way every success response is shaped.
func envelope(payload any) fiber.Map {
	return fiber.Map{
		"status": "success",
		"data":   fiber.Map{"data": payload},
	}
}

// listEnvelope adds the pagination metadata list reads carry.
func listEnvelope(payload any, results int, totalDoc, page int64) fiber.Map {
	return fiber.Map{
		"status":   "success",
		"results":  results,
		"totalDoc": totalDoc,
		"page":     page,
		"data":     fiber.Map{"data": payload},
	}
}

// paramID parses the hex id in the named route parameter; a malformed id is a
// 400, never a 404.
func paramID(c *fiber.Ctx, name string) (bson.ObjectID, error) {
	raw := c.Params(name)
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.NilObjectID, apperr.BadRequest("invalid id '%s'", raw)
	}
	return id, nil
}

// checkStruct runs the validator and folds field failures into one
// field-level message.
func checkStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return apperr.BadRequest("%s", strings.Join(msgs, "; "))
	}
	return apperr.BadRequest("invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	default:
		return field + " is invalid"
	}
}
