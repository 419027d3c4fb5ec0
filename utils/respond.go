package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Success writes the {"success":true,"data":…} envelope.
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// Created is Success with a 201 status, used after inserts.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// Fail maps a service error to the envelope. Unknown errors are wrapped
// as internal so their text still reaches the client log trail.
func Fail(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal("%s", err.Error())
	}
	if appErr.Kind == KindUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(statusForKind(appErr.Kind)).JSON(fiber.Map{
		"success": false,
		"error":   appErr,
	})
}
