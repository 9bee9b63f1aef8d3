package flights

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes the proxy endpoint. The raw upstream body is passed
// through unmodified; normalization happens in the consumer.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/flights", func(c *fiber.Ctx) error {
		q := Query{
			DepartureID:  c.Query("departure_id"),
			ArrivalID:    c.Query("arrival_id"),
			OutboundDate: c.Query("outbound_date"),
			Currency:     c.Query("currency"),
			Type:         c.Query("type"),
		}
		if q.DepartureID == "" || q.ArrivalID == "" || q.OutboundDate == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing required params: departure_id, arrival_id, outbound_date",
			})
		}

		body, err := svc.Fetch(c.Context(), q)
		if err != nil {
			var upstream *upstreamError
			if errors.As(err, &upstream) {
				return c.Status(upstream.Status).JSON(fiber.Map{
					"error":   upstream.Error(),
					"details": upstream.Body,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Set(fiber.HeaderCacheControl, "s-maxage=3600, stale-while-revalidate")
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	})

	r.Get("/airports", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"airports":     HomeAirports,
			"destinations": Destinations,
		})
	})
}
