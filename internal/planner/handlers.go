package planner

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(svc.State())
	})

	r.Post("/users", func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		if err := svc.Join(c.Context(), name); err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": name})
	})

	r.Post("/clear", func(c *fiber.Ctx) error {
		if err := svc.ClearAll(c.Context()); err != nil {
			return httpError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/trips/:user/settings", func(c *fiber.Ctx) error {
		var req SettingsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		plan, err := svc.UpdateSettings(c.Context(), c.Params("user"), req)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(plan)
	})

	r.Post("/trips/:user/legs", func(c *fiber.Ctx) error {
		var req LegRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.City == "" {
			return fiber.NewError(fiber.StatusBadRequest, "city required")
		}
		id, leg, err := svc.AddLeg(c.Context(), c.Params("user"), req)
		if err != nil {
			return httpError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "leg": leg})
	})

	r.Patch("/trips/:user/legs/:id", func(c *fiber.Ctx) error {
		var patch LegPatch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		leg, err := svc.UpdateLeg(c.Context(), c.Params("user"), c.Params("id"), patch)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(leg)
	})

	r.Delete("/trips/:user/legs/:id", func(c *fiber.Ctx) error {
		if err := svc.RemoveLeg(c.Context(), c.Params("user"), c.Params("id")); err != nil {
			return httpError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/trips/:user/legs/:id/flights", func(c *fiber.Ctx) error {
		var req SelectFlightRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		selection, err := svc.SelectFlight(c.Context(), c.Params("user"), c.Params("id"), req)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(selection)
	})

	r.Delete("/trips/:user/legs/:id/flights/:direction", func(c *fiber.Ctx) error {
		err := svc.ClearFlight(c.Context(), c.Params("user"), c.Params("id"), c.Params("direction"))
		if err != nil {
			return httpError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/trips/:user/summary", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Params("user"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(summary)
	})

	r.Get("/trips/:user/legs/:id/flights/search", func(c *fiber.Ctx) error {
		resp, err := svc.SearchLeg(c.Context(), c.Params("user"), c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(resp)
	})
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrLegNotFound), errors.Is(err, ErrFlightNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCurrency), errors.Is(err, ErrNoAirportCode), errors.Is(err, ErrBadDirection):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
