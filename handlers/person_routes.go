// handlers/person_routes.go
package handlers

import (
	"strconv"

	"card-explorer-backend/middleware"
	"card-explorer-backend/models"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func queryLimit(c *fiber.Ctx) int {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	return limit
}

// SetupPersonRoutes wires /api/pessoas, /api/usuarios and /api/educadores.
func SetupPersonRoutes(app *fiber.App, people *services.PersonService, profiles *services.ProfileService,
	educators *services.EducatorService, progression *services.ProgressionService, auth fiber.Handler) {

	pessoas := app.Group("/api/pessoas", auth)

	pessoas.Post("/", func(c *fiber.Ctx) error {
		var p models.Person
		if err := c.BodyParser(&p); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		created, err := people.Create(&p)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, created)
	})

	pessoas.Get("/", func(c *fiber.Ctx) error {
		list, err := people.List(c.Query("tipo"), queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	pessoas.Get("/:nickname", func(c *fiber.Ctx) error {
		p, err := people.GetByNickname(c.Params("nickname"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, p)
	})

	pessoas.Put("/:nickname", func(c *fiber.Ctx) error {
		type Req struct {
			Email *string `json:"email"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		p, err := people.Update(c.Params("nickname"), req.Email)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, p)
	})

	pessoas.Delete("/:nickname", func(c *fiber.Ctx) error {
		if err := people.Delete(c.Params("nickname")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "pessoa deletada com sucesso"})
	})

	usuarios := app.Group("/api/usuarios", auth)

	usuarios.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			Nickname string `json:"nickname"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		profile, err := profiles.Create(req.Nickname)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, profile)
	})

	usuarios.Get("/", func(c *fiber.Ctx) error {
		list, err := profiles.List(queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	// Registered before /:nickname so "leaderboard" is not taken as one.
	usuarios.Get("/leaderboard", func(c *fiber.Ctx) error {
		list, err := progression.Leaderboard(queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	usuarios.Post("/foto", func(c *fiber.Ctx) error {
		nickname := middleware.CurrentNickname(c)

		fileHeader, err := c.FormFile("foto")
		if err != nil {
			return utils.Fail(c, utils.Validation("arquivo 'foto' é obrigatório"))
		}

		key := utils.ObjectKey("perfis", nickname, fileHeader.Filename)
		url, err := utils.UploadFile(fileHeader, key)
		if err != nil {
			return utils.Fail(c, err)
		}

		profile, err := profiles.SetPhoto(nickname, url)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, profile)
	})

	usuarios.Get("/:nickname", func(c *fiber.Ctx) error {
		profile, err := profiles.Get(c.Params("nickname"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, profile)
	})

	usuarios.Delete("/:nickname", func(c *fiber.Ctx) error {
		if err := profiles.Delete(c.Params("nickname")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "usuário deletado com sucesso"})
	})

	educadores := app.Group("/api/educadores", auth)

	educadores.Post("/", func(c *fiber.Ctx) error {
		type Req struct {
			Nickname string `json:"nickname"`
			Title    string `json:"titulo"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		educator, err := educators.Create(req.Nickname, req.Title)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, educator)
	})

	educadores.Get("/", func(c *fiber.Ctx) error {
		list, err := educators.List(queryLimit(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	educadores.Get("/:nickname", func(c *fiber.Ctx) error {
		educator, err := educators.Get(c.Params("nickname"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, educator)
	})

	educadores.Put("/:nickname", func(c *fiber.Ctx) error {
		type Req struct {
			Title string `json:"titulo"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		educator, err := educators.UpdateTitle(c.Params("nickname"), req.Title)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, educator)
	})

	educadores.Delete("/:nickname", func(c *fiber.Ctx) error {
		if err := educators.Delete(c.Params("nickname")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "educador deletado com sucesso"})
	})
}
