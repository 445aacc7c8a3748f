package onboardingController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms/database"
	"hrms/middleware"
	"hrms/models"
	"hrms/progress"
)

// SubmitProfile saves the candidate's profile fields and moves them to
// PROFILE_FILLED.
func SubmitProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	reqData := new(struct {
		DateOfBirth      string  `json:"date_of_birth"`
		Address          string  `json:"address"`
		City             string  `json:"city"`
		State            string  `json:"state"`
		PinCode          string  `json:"pin_code"`
		Qualification    string  `json:"qualification"`
		PreviousEmployer string  `json:"previous_employer"`
		ExperienceYears  float32 `json:"experience_years"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	updates := map[string]interface{}{
		"date_of_birth":     reqData.DateOfBirth,
		"address":           reqData.Address,
		"city":              reqData.City,
		"state":             reqData.State,
		"pin_code":          reqData.PinCode,
		"qualification":     reqData.Qualification,
		"previous_employer": reqData.PreviousEmployer,
		"experience_years":  reqData.ExperienceYears,
	}
	if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		log.Printf("Error saving profile for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save profile!", nil)
	}

	rec, err := Service.RequestTransition(c.UserContext(), userID, pipelineFor(c), progress.StepProfileFilled, time.Now())
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile saved.", rec)
}

// ScheduleInterview books an interview slot and moves the candidate to
// INTERVIEW_SCHEDULED. The same endpoint is the retry path out of
// INTERVIEW_FAILED once the cooldown has elapsed.
func ScheduleInterview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	reqData := new(struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	rec, err := Service.RequestTransition(c.UserContext(), userID, pipelineFor(c), progress.StepInterviewScheduled, time.Now())
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	interview := models.Interview{
		UserID:      userID,
		Round:       1,
		ScheduledAt: reqData.ScheduledAt,
	}
	if err := database.Database.Db.Create(&interview).Error; err != nil {
		log.Printf("Error creating interview for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule interview!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Interview scheduled.", fiber.Map{
		"progress":  rec,
		"interview": interview,
	})
}
