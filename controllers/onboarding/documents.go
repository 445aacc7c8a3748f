package onboardingController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms/config"
	"hrms/database"
	"hrms/middleware"
	"hrms/models"
	"hrms/progress"
	"hrms/utils"
)

var documentKinds = map[string]bool{
	"AADHAAR":    true,
	"PAN":        true,
	"EDUCATION":  true,
	"EXPERIENCE": true,
}

// UploadDocuments stores the candidate's document files, moves them to
// DOCS_UPLOADED and marks the documents milestone.
func UploadDocuments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
	}

	db := database.Database.Db
	var saved []models.Document
	for kind, files := range form.File {
		if !documentKinds[kind] || len(files) == 0 {
			continue
		}
		filePath, err := utils.SaveUploadedFile(files[0], config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Error saving %s document for user %d: %v", kind, userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save document!", nil)
		}
		doc := models.Document{
			UserID:   userID,
			Kind:     kind,
			FilePath: filePath,
		}
		if err := db.Create(&doc).Error; err != nil {
			log.Printf("Error recording %s document for user %d: %v", kind, userID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save document!", nil)
		}
		saved = append(saved, doc)
	}

	if len(saved) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No valid documents in request!", nil)
	}

	pipeline := pipelineFor(c)
	rec, err := Service.RequestTransition(c.UserContext(), userID, pipeline, progress.StepDocsUploaded, time.Now())
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	rec, err = Service.MarkMilestone(c.UserContext(), userID, pipeline, progress.MilestoneDocumentsUploaded)
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Documents uploaded.", fiber.Map{
		"progress":  rec,
		"documents": saved,
	})
}

// AcceptOffer records the candidate's signature on the offer letter, moves
// them to OFFER_SIGNED and marks onboarding complete.
func AcceptOffer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	pipeline := pipelineFor(c)
	rec, err := Service.RequestTransition(c.UserContext(), userID, pipeline, progress.StepOfferSigned, time.Now())
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	rec, err = Service.MarkMilestone(c.UserContext(), userID, pipeline, progress.MilestoneOnboardingCompleted)
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offer accepted. Welcome aboard!", rec)
}
