// handlers/message_routes.go
package handlers

import (
	"card-explorer-backend/middleware"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupMessageRoutes wires /api/mensagens and /api/chats.
func SetupMessageRoutes(app *fiber.App, messages *services.MessageService, auth fiber.Handler) {
	mensagens := app.Group("/api/mensagens", auth)

	mensagens.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			Recipient  string  `json:"destinatario"`
			Text       string  `json:"texto"`
			Type       string  `json:"tipo"`
			CardQRCode *string `json:"carta_id"`
			TradeID    *string `json:"troca_id"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		msg, err := messages.Send(middleware.CurrentNickname(c), req.Recipient, req.Text, req.Type, req.CardQRCode, req.TradeID)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, msg)
	})

	mensagens.Get("/", func(c *fiber.Ctx) error {
		msgs, err := messages.Inbox(middleware.CurrentNickname(c), queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, msgs)
	})

	mensagens.Get("/enviadas", func(c *fiber.Ctx) error {
		msgs, err := messages.Sent(middleware.CurrentNickname(c), queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, msgs)
	})

	mensagens.Get("/conversa/:nickname", func(c *fiber.Ctx) error {
		msgs, err := messages.Conversation(middleware.CurrentNickname(c), c.Params("nickname"), queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, msgs)
	})

	chats := app.Group("/api/chats", auth)

	chats.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			With string `json:"usuario"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		chat, err := messages.OpenChat(middleware.CurrentNickname(c), req.With)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, chat)
	})

	chats.Get("/", func(c *fiber.Ctx) error {
		list, err := messages.Chats(middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	chats.Get("/:nickname", func(c *fiber.Ctx) error {
		chat, err := messages.GetChat(middleware.CurrentNickname(c), c.Params("nickname"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, chat)
	})

	chats.Delete("/:nickname", func(c *fiber.Ctx) error {
		if err := messages.DeleteChat(middleware.CurrentNickname(c), c.Params("nickname")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "chat removido com sucesso"})
	})
}
