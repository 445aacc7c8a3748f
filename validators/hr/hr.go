package hrValidator

import (
	"github.com/gofiber/fiber/v2"

	"hrms/middleware"
)

// RecordInterviewRound validator middleware
func RecordInterviewRound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint   `json:"user_id"`
			Round  int    `json:"round"`
			Result string `json:"result"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "Candidate id is required!"
		}
		if reqData.Round < 1 || reqData.Round > 3 {
			errors["round"] = "Round must be between 1 and 3!"
		}
		if reqData.Result != "CLEARED" && reqData.Result != "FAILED" {
			errors["result"] = "Result must be CLEARED or FAILED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// ReviewDocument validator middleware
func ReviewDocument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DocumentID uint   `json:"document_id"`
			Status     string `json:"status"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.DocumentID == 0 {
			errors["document_id"] = "Document id is required!"
		}
		if reqData.Status != "APPROVED" && reqData.Status != "REJECTED" {
			errors["status"] = "Status must be APPROVED or REJECTED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
