package onboardingController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hrms/database"
	"hrms/middleware"
	"hrms/models"
	"hrms/progress"
	"hrms/utils"
)

// GenerateIDCard issues the employee ID card, moves the subject to
// ID_CARD_GENERATED and marks the final pre-completion milestone.
func GenerateIDCard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	// One card per subject
	var existing models.IDCard
	if err := db.Where("user_id = ? AND is_deleted = false", userID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "ID card already generated!", existing)
	}

	pipeline := pipelineFor(c)
	rec, err := Service.RequestTransition(c.UserContext(), userID, pipeline, progress.StepIDCardGenerated, time.Now())
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	cardNumber := fmt.Sprintf("EMP-%s", strings.ToUpper(uuid.NewString()[:8]))
	card := models.IDCard{
		UserID:     userID,
		CardNumber: cardNumber,
		IssuedAt:   time.Now(),
	}
	if err := db.Create(&card).Error; err != nil {
		log.Printf("Error saving ID card for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate ID card!", nil)
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).Update("employee_code", cardNumber).Error; err != nil {
		log.Printf("Error updating employee code for user %d: %v", userID, err)
	}

	rec, err = Service.MarkMilestone(c.UserContext(), userID, pipeline, progress.MilestoneIDCardGenerated)
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	if err := utils.SendIDCardEmail(user.Email, user.Name, cardNumber); err != nil {
		log.Printf("Error sending ID card email to user %d: %v", userID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "ID card generated.", fiber.Map{
		"progress": rec,
		"id_card":  card,
	})
}

// Finish closes the pipeline by moving the subject to COMPLETED.
func Finish(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	rec, err := Service.RequestTransition(c.UserContext(), userID, pipelineFor(c), progress.StepCompleted, time.Now())
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Onboarding completed.", rec)
}
