package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

// ErrorHandlerMiddleware maps AppError values onto HTTP responses so
// controllers can just `return err`.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := AsAppError(err); ok {
			body := fiber.Map{
				"success": false,
				"message": appErr.Message,
				"code":    appErr.Code,
			}
			if len(appErr.Fields) > 0 {
				body["errors"] = appErr.Fields
			}
			return ctx.Status(appErr.HTTPStatus()).JSON(body)
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
		})
	}
}
