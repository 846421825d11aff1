package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/policy"
	"blogapi/internal/query"
	"blogapi/internal/repository"
)

// The factory shapes compose the query pipeline, the ownership guard and a
// repository into the standard list/get/update/delete handlers, so each
// resource only declares what differs: its owner field, its mutable fields and
// any post-write trigger.

// List serves a collection read through the query feature pipeline.
func List[T any](s *repository.Store[T]) fiber.Handler {
	return ListFiltered(s, nil)
}

// ListFiltered is List with an extra filter derived from the route, e.g. the
// article id of a nested comments listing.
func ListFiltered[T any](s *repository.Store[T], scope func(c *fiber.Ctx) (bson.M, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := query.Parse(c.Queries())
		if scope != nil {
			extra, err := scope(c)
			if err != nil {
				return err
			}
			for k, v := range extra {
				q.Filter[k] = v
			}
		}

		items, total, err := s.Find(c.Context(), q)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).
			JSON(listEnvelope(items, len(items), total, q.TotalPages(total)))
	}
}

// GetOne reads a single document by its route id.
func GetOne[T any](s *repository.Store[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		doc, err := s.FindByID(c.Context(), id)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(envelope(doc))
	}
}

// UpdateOwned patches a document after the ownership guard passes. Only
// whitelisted fields survive; clean can normalize or reject the patch.
func UpdateOwned[T any](
	s *repository.Store[T],
	kind string,
	ownerOf func(*T) bson.ObjectID,
	allowed models.Whitelist,
	clean func(set bson.M) error,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		doc, err := s.FindByID(c.Context(), id)
		if err != nil {
			return err
		}
		if ownerOf != nil {
			actor, err := middleware.CurrentUser(c)
			if err != nil {
				return err
			}
			if err := policy.Authorize(actor, ownerOf(doc), kind); err != nil {
				return err
			}
		}

		body := map[string]any{}
		if err := c.BodyParser(&body); err != nil {
			return apperr.BadRequest("invalid request body")
		}
		set := allowed.Build(body)
		if len(set) == 0 {
			return apperr.BadRequest("no updatable fields in request body")
		}
		if clean != nil {
			if err := clean(set); err != nil {
				return err
			}
		}

		updated, err := s.UpdateByID(c.Context(), id, set)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(envelope(updated))
	}
}

// DeleteOwned removes a document after the ownership guard passes. The after
// trigger runs post-delete; if it fails the delete stands and the failure is
// logged for reconciliation.
func DeleteOwned[T any](
	s *repository.Store[T],
	kind string,
	log *logrus.Logger,
	ownerOf func(*T) bson.ObjectID,
	after func(ctx context.Context, doc *T) error,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		doc, err := s.FindByID(c.Context(), id)
		if err != nil {
			return err
		}
		if ownerOf != nil {
			actor, err := middleware.CurrentUser(c)
			if err != nil {
				return err
			}
			if err := policy.Authorize(actor, ownerOf(doc), kind); err != nil {
				return err
			}
		}

		if err := s.DeleteByID(c.Context(), id); err != nil {
			return err
		}
		if after != nil {
			if err := after(c.Context(), doc); err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"kind": kind,
					"id":   id.Hex(),
				}).Warn("post-delete trigger failed, state reconciled on next recount")
			}
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
