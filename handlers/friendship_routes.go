// handlers/friendship_routes.go
package handlers

import (
	"card-explorer-backend/middleware"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupFriendshipRoutes wires /api/amizades and keeps /api/adiciona as an
// alias so older clients keep working.
func SetupFriendshipRoutes(app *fiber.App, friendships *services.FriendshipService, auth fiber.Handler) {
	for _, prefix := range []string{"/api/amizades", "/api/adiciona"} {
		registerFriendshipRoutes(app.Group(prefix, auth), friendships)
	}
}

func registerFriendshipRoutes(g fiber.Router, friendships *services.FriendshipService) {
	g.Post("/solicitar", func(c *fiber.Ctx) error {
		type Req struct {
			Recipient string `json:"destinatario"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		f, err := friendships.Request(middleware.CurrentNickname(c), req.Recipient)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, f)
	})

	g.Post("/:id/aceitar", func(c *fiber.Ctx) error {
		f, err := friendships.Accept(c.Params("id"), middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, f)
	})

	g.Post("/:id/recusar", func(c *fiber.Ctx) error {
		f, err := friendships.Reject(c.Params("id"), middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, f)
	})

	g.Get("/meus-amigos", func(c *fiber.Ctx) error {
		friends, err := friendships.Friends(middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, friends)
	})

	g.Get("/solicitacoes-pendentes", func(c *fiber.Ctx) error {
		pending, err := friendships.Pending(middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, pending)
	})

	g.Get("/buscar", func(c *fiber.Ctx) error {
		results, err := friendships.Search(c.Query("q"), middleware.CurrentNickname(c), queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, results)
	})

	g.Get("/status/:nickname", func(c *fiber.Ctx) error {
		status, err := friendships.Status(middleware.CurrentNickname(c), c.Params("nickname"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, status)
	})

	g.Delete("/:nickname", func(c *fiber.Ctx) error {
		if err := friendships.Remove(middleware.CurrentNickname(c), c.Params("nickname")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "amizade removida com sucesso"})
	})
}
