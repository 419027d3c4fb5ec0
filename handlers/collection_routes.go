// handlers/collection_routes.go
package handlers

import (
	"card-explorer-backend/middleware"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type cardQuantityReq struct {
	CardID   string `json:"carta_id"`
	Quantity int    `json:"quantidade"`
}

// SetupCollectionRoutes wires the authenticated collection endpoints. The
// acting player always comes from the token, never from the body.
func SetupCollectionRoutes(app *fiber.App, collection *services.CollectionService, auth fiber.Handler) {
	app.Get("/api/minha-colecao", auth, func(c *fiber.Ctx) error {
		entries, err := collection.List(middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, entries)
	})

	colecao := app.Group("/api/colecao", auth)

	colecao.Post("/adicionar", func(c *fiber.Ctx) error {
		req := cardQuantityReq{Quantity: 1}
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		result, err := collection.AddCard(middleware.CurrentNickname(c), req.CardID, req.Quantity)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, result)
	})

	colecao.Post("/remover", func(c *fiber.Ctx) error {
		req := cardQuantityReq{Quantity: 1}
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		entry, err := collection.RemoveCard(middleware.CurrentNickname(c), req.CardID, req.Quantity)
		if err != nil {
			return utils.Fail(c, err)
		}
		if entry == nil {
			return utils.Success(c, fiber.Map{"message": "carta removida da coleção"})
		}
		return utils.Success(c, entry)
	})

	colecao.Get("/estatisticas", func(c *fiber.Ctx) error {
		stats, err := collection.Stats(middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, stats)
	})

	colecao.Get("/verificar/:carta_id", func(c *fiber.Ctx) error {
		entry, err := collection.Verify(middleware.CurrentNickname(c), c.Params("carta_id"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, entry)
	})

	colecao.Delete("/limpar", func(c *fiber.Ctx) error {
		if err := collection.Clear(middleware.CurrentNickname(c)); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "coleção limpa com sucesso"})
	})
}
