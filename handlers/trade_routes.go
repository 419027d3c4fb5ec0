// handlers/trade_routes.go
package handlers

import (
	"card-explorer-backend/middleware"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupTradeRoutes wires /api/trocas.
func SetupTradeRoutes(app *fiber.App, trades *services.TradeService, auth fiber.Handler) {
	trocas := app.Group("/api/trocas", auth)

	trocas.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			Recipient     string `json:"destinatario"`
			OfferedCard   string `json:"cartaoferecida"`
			RequestedCard string `json:"cartasolicitada"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		trade, err := trades.Propose(middleware.CurrentNickname(c), req.Recipient, req.OfferedCard, req.RequestedCard)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, trade)
	})

	trocas.Get("/", func(c *fiber.Ctx) error {
		list, err := trades.List(middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	trocas.Post("/:id/aceitar", func(c *fiber.Ctx) error {
		trade, err := trades.Accept(c.Params("id"), middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, trade)
	})

	trocas.Post("/:id/rejeitar", func(c *fiber.Ctx) error {
		trade, err := trades.Reject(c.Params("id"), middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, trade)
	})

	trocas.Post("/:id/cancelar", func(c *fiber.Ctx) error {
		trade, err := trades.Cancel(c.Params("id"), middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, trade)
	})
}
