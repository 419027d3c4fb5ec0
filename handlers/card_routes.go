// handlers/card_routes.go
package handlers

import (
	"card-explorer-backend/models"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCardRoutes wires /api/cartas and /api/cartararas.
func SetupCardRoutes(app *fiber.App, cards *services.CardService, auth fiber.Handler) {
	cartas := app.Group("/api/cartas", auth)

	cartas.Post("/", func(c *fiber.Ctx) error {
		var card models.Card
		if err := c.BodyParser(&card); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		created, err := cards.Create(&card)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, created)
	})

	cartas.Get("/", func(c *fiber.Ctx) error {
		list, err := cards.List(c.Query("raridade"), c.Query("localizacao"), queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	cartas.Get("/:qrcode", func(c *fiber.Ctx) error {
		card, err := cards.Get(c.Params("qrcode"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, card)
	})

	cartas.Put("/:qrcode", func(c *fiber.Ctx) error {
		var upd services.CardUpdate
		if err := c.BodyParser(&upd); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		card, err := cards.Update(c.Params("qrcode"), upd)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, card)
	})

	cartas.Delete("/:qrcode", func(c *fiber.Ctx) error {
		if err := cards.Delete(c.Params("qrcode")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "carta deletada com sucesso"})
	})

	// Multipart upload: fields "imagem" and/or "audio".
	cartas.Post("/:qrcode/midia", func(c *fiber.Ctx) error {
		qrcode := c.Params("qrcode")
		card, err := cards.Get(qrcode)
		if err != nil {
			return utils.Fail(c, err)
		}

		var imageURL, audioURL string
		if fh, err := c.FormFile("imagem"); err == nil {
			key := utils.ObjectKey("cartas", card.Name, fh.Filename)
			imageURL, err = utils.UploadFile(fh, key)
			if err != nil {
				return utils.Fail(c, err)
			}
		}
		if fh, err := c.FormFile("audio"); err == nil {
			key := utils.ObjectKey("cartas", card.Name, fh.Filename)
			audioURL, err = utils.UploadFile(fh, key)
			if err != nil {
				return utils.Fail(c, err)
			}
		}
		if imageURL == "" && audioURL == "" {
			return utils.Fail(c, utils.Validation("envie 'imagem' e/ou 'audio'"))
		}

		card, err = cards.AttachMedia(qrcode, imageURL, audioURL)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, card)
	})

	cartararas := app.Group("/api/cartararas", auth)

	cartararas.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			QRCode string `json:"qrcode"`
			Story  string `json:"historia"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		story, err := cards.CreateStory(req.QRCode, req.Story)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, story)
	})

	cartararas.Get("/", func(c *fiber.Ctx) error {
		list, err := cards.ListStories()
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	cartararas.Get("/:qrcode", func(c *fiber.Ctx) error {
		story, err := cards.GetStory(c.Params("qrcode"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, story)
	})

	cartararas.Put("/:qrcode", func(c *fiber.Ctx) error {
		type Req struct {
			Story string `json:"historia"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		story, err := cards.UpdateStory(c.Params("qrcode"), req.Story)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, story)
	})

	cartararas.Delete("/:qrcode", func(c *fiber.Ctx) error {
		if err := cards.DeleteStory(c.Params("qrcode")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "história deletada com sucesso"})
	})
}
