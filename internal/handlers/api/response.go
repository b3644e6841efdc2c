package api

import (
	"github.com/gofiber/fiber/v3"
)

// envelope is the shape of every API response.
type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(envelope{Status: "ok", Data: data})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Status: "error", Error: message})
}

// jsonDatasetError reports a failed dataset along with its status, so clients
// can tell a failure from missing configuration.
func jsonDatasetError(c fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(envelope{Status: "error", Error: message, Data: data})
}
