// handlers/mission_routes.go
package handlers

import (
	"strconv"

	"card-explorer-backend/middleware"
	"card-explorer-backend/models"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func missionCode(c *fiber.Ctx) (uint, error) {
	code, err := strconv.ParseUint(c.Params("codigo"), 10, 32)
	if err != nil {
		return 0, utils.Validation("código de missão inválido")
	}
	return uint(code), nil
}

// SetupMissionRoutes wires /api/missoes with goal and participation
// subresources.
func SetupMissionRoutes(app *fiber.App, missions *services.MissionService, auth fiber.Handler) {
	missoes := app.Group("/api/missoes", auth)

	missoes.Post("/", func(c *fiber.Ctx) error {
		var m models.Mission
		if err := c.BodyParser(&m); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		created, err := missions.Create(&m)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, created)
	})

	missoes.Get("/", func(c *fiber.Ctx) error {
		list, err := missions.List(c.Query("status"))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, list)
	})

	missoes.Get("/:codigo", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		m, err := missions.Get(code)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, m)
	})

	missoes.Put("/:codigo", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		var upd services.MissionUpdate
		if err := c.BodyParser(&upd); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		m, err := missions.Update(code, upd)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, m)
	})

	missoes.Delete("/:codigo", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		if err := missions.Delete(code); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "missão deletada com sucesso"})
	})

	missoes.Put("/:codigo/meta-quantidade", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		type Req struct {
			Total int `json:"qtdtotal"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		goal, err := missions.SetQuantityGoal(code, req.Total)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, goal)
	})

	missoes.Get("/:codigo/meta-quantidade", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		goal, err := missions.GetQuantityGoal(code)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, goal)
	})

	missoes.Post("/:codigo/cartas-alvo", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		type Req struct {
			QRCode string `json:"qrcode"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		goal, err := missions.AddRarityGoal(code, req.QRCode)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, goal)
	})

	missoes.Get("/:codigo/cartas-alvo", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		goals, err := missions.ListRarityGoals(code)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, goals)
	})

	missoes.Delete("/:codigo/cartas-alvo/:qrcode", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		if err := missions.RemoveRarityGoal(code, c.Params("qrcode")); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "carta alvo removida"})
	})

	missoes.Post("/:codigo/participar", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		p, err := missions.Join(code, middleware.CurrentNickname(c))
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, p)
	})

	missoes.Delete("/:codigo/participar", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		if err := missions.Leave(code, middleware.CurrentNickname(c)); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "participação removida"})
	})

	missoes.Put("/:codigo/progresso", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		type Req struct {
			Collected *int  `json:"qtdcoletada"`
			Completed *bool `json:"concluida"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}
		p, err := missions.Progress(code, middleware.CurrentNickname(c), req.Collected, req.Completed)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, p)
	})

	missoes.Get("/:codigo/participantes", func(c *fiber.Ctx) error {
		code, err := missionCode(c)
		if err != nil {
			return utils.Fail(c, err)
		}
		parts, err := missions.Participants(code)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, parts)
	})
}
