package onboardingValidator

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms/middleware"
)

// SubmitProfile validator middleware
func SubmitProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DateOfBirth     string  `json:"date_of_birth"`
			Address         string  `json:"address"`
			City            string  `json:"city"`
			PinCode         string  `json:"pin_code"`
			Qualification   string  `json:"qualification"`
			ExperienceYears float32 `json:"experience_years"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.DateOfBirth != "" {
			if _, err := time.Parse("2006-01-02", reqData.DateOfBirth); err != nil {
				errors["date_of_birth"] = "Date of birth must be YYYY-MM-DD!"
			}
		}
		if len(strings.TrimSpace(reqData.Address)) < 5 {
			errors["address"] = "Address must be at least 5 characters long!"
		}
		if strings.TrimSpace(reqData.City) == "" {
			errors["city"] = "City is required!"
		}
		if strings.TrimSpace(reqData.Qualification) == "" {
			errors["qualification"] = "Qualification is required!"
		}
		if reqData.ExperienceYears < 0 {
			errors["experience_years"] = "Experience cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// ScheduleInterview validator middleware
func ScheduleInterview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ScheduledAt time.Time `json:"scheduled_at"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ScheduledAt.IsZero() {
			errors["scheduled_at"] = "Interview slot is required!"
		} else if reqData.ScheduledAt.Before(time.Now()) {
			errors["scheduled_at"] = "Interview slot must be in the future!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
