// handlers/auth_routes.go
package handlers

import (
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the unauthenticated identity endpoints. All
// credential work happens on the provider; these routes only translate.
func SetupAuthRoutes(app *fiber.App, accounts *services.AccountService) {
	app.Post("/register", func(c *fiber.Ctx) error {
		type Req struct {
			Nickname string `json:"nickname"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"tipo"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}

		person, err := accounts.Register(req.Nickname, req.Email, req.Password, req.Role)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Created(c, person)
	})

	app.Post("/login", func(c *fiber.Ctx) error {
		type Req struct {
			Nickname string `json:"nickname"`
			Password string `json:"password"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}

		session, err := accounts.Login(req.Nickname, req.Password)
		if err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{
			"access_token":  session.AccessToken,
			"refresh_token": session.RefreshToken,
			"expires_in":    session.ExpiresIn,
			"user":          session.User,
		})
	})

	app.Post("/reset-password", func(c *fiber.Ctx) error {
		type Req struct {
			Nickname string `json:"nickname"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return utils.Fail(c, utils.Validation("JSON inválido"))
		}

		if err := accounts.ResetPassword(req.Nickname); err != nil {
			return utils.Fail(c, err)
		}
		return utils.Success(c, fiber.Map{"message": "email de redefinição enviado"})
	})
}
