package presenters

import (
	"Recipe-Box/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

var statusCodes = map[string]int{
	domain.StatusOK:              fiber.StatusOK,
	domain.StatusUnauthorized:    fiber.StatusUnauthorized,
	domain.StatusNotFound:        fiber.StatusNotFound,
	domain.StatusInvalidArgument: fiber.StatusBadRequest,
	domain.StatusInternalError:   fiber.StatusInternalServerError,
}

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  domain.StatusOK,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err with an explicit HTTP code. The status
// classifier is still derived from err.
func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{
		Status:  domain.StatusOf(err),
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(code).JSON(res)
}

// ErrorFrom writes err with the HTTP code that matches its classifier.
// Internal errors are not echoed to the client.
func ErrorFrom(c *fiber.Ctx, message string, err error) error {
	status := domain.StatusOf(err)
	res := Response{
		Status:  status,
		Message: message,
	}
	if status == domain.StatusUnauthorized {
		res.Message = domain.MessageSignInRequired
	}
	if status != domain.StatusInternalError && err != nil {
		res.Error = err.Error()
	}
	return c.Status(StatusCode(status)).JSON(res)
}

func StatusCode(status string) int {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return fiber.StatusInternalServerError
}
