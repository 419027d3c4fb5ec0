package handlers

import (
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupHealthRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.Success(c, fiber.Map{"message": "API rodando!"})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return utils.Fail(c, utils.Internal("banco de dados indisponível"))
		}
		return utils.Success(c, fiber.Map{"status": "ok"})
	})
}
