package middleware

import (
	"log"
	"strings"

	"card-explorer-backend/models"
	"card-explorer-backend/services"
	"card-explorer-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// TokenValidator resolves a bearer token to its provider account.
// Satisfied by services.AuthClient; tests swap in a fake.
type TokenValidator interface {
	GetUser(accessToken string) (*services.AuthUser, error)
}

// PersonResolver maps the provider email back to the local person.
type PersonResolver interface {
	GetByEmail(email string) (*models.Person, error)
}

// RequireUser validates the bearer token against the identity provider
// and puts nickname, email and role into the request context. Failures
// answer 401 with a WWW-Authenticate: Bearer header.
func RequireUser(validator TokenValidator, people PersonResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.Fail(c, utils.Unauthorized("token de autenticação ausente"))
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			return utils.Fail(c, utils.Unauthorized("token de autenticação inválido"))
		}

		user, err := validator.GetUser(token)
		if err != nil {
			log.Printf("🚫 [AUTH] Token rejected for %s: %v", c.Path(), err)
			return utils.Fail(c, utils.Unauthorized("token inválido ou expirado"))
		}

		person, err := people.GetByEmail(user.Email)
		if err != nil {
			log.Printf("🚫 [AUTH] No person for email of account %s on %s", user.ID, c.Path())
			return utils.Fail(c, utils.Unauthorized("usuário autenticado não encontrado"))
		}

		c.Locals("nickname", person.Nickname)
		c.Locals("email", person.Email)
		c.Locals("role", person.Role)
		return c.Next()
	}
}

// CurrentNickname reads the nickname RequireUser stored on the context.
func CurrentNickname(c *fiber.Ctx) string {
	nickname, _ := c.Locals("nickname").(string)
	return nickname
}
