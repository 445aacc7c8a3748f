package hrController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"hrms/database"
	"hrms/middleware"
	"hrms/models"
	"hrms/progress"
	"hrms/utils"
)

// Service is the shared progress orchestrator, set once from main.
var Service *progress.Service

func Init(svc *progress.Service) {
	Service = svc
}

// pipelineOf reads the subject's stored pipeline so HR actions follow the
// record, not the HR user's own role.
func pipelineOf(rec *models.OnboardingProgress) progress.Pipeline {
	if rec != nil && rec.Pipeline == string(progress.PipelineEmployee) {
		return progress.PipelineEmployee
	}
	return progress.PipelineCandidate
}

// RecordInterviewRound stores an interview outcome and advances the
// candidate: FAILED starts the retry cooldown, a cleared final round moves to
// INTERVIEW_PASSED, an intermediate clear advances to the next round.
func RecordInterviewRound(c *fiber.Ctx) error {
	reqData := new(struct {
		UserID   uint   `json:"user_id"`
		Round    int    `json:"round"`
		Result   string `json:"result"` // CLEARED or FAILED
		Final    bool   `json:"final"`
		Feedback string `json:"feedback"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Candidate not found!", nil)
	}

	rec, err := Service.GetStatus(c.UserContext(), reqData.UserID, progress.PipelineCandidate)
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}
	pipeline := pipelineOf(rec)

	var target progress.Step
	switch {
	case reqData.Result == "FAILED":
		target = progress.StepInterviewFailed
	case reqData.Final || reqData.Round >= 3:
		target = progress.StepInterviewPassed
	case reqData.Round == 1:
		target = progress.StepInterviewRound2
	default:
		target = progress.StepInterviewRound3
	}

	rec, err = Service.RequestTransition(c.UserContext(), reqData.UserID, pipeline, target, time.Now())
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	result := "CLEARED"
	if reqData.Result == "FAILED" {
		result = "FAILED"
	}
	updates := map[string]interface{}{"result": result, "feedback": reqData.Feedback}
	if err := db.Model(&models.Interview{}).
		Where("user_id = ? AND round = ? AND is_deleted = false", reqData.UserID, reqData.Round).
		Updates(updates).Error; err != nil {
		log.Printf("Error updating interview round for user %d: %v", reqData.UserID, err)
	}

	if target == progress.StepInterviewPassed || target == progress.StepInterviewFailed {
		passed := target == progress.StepInterviewPassed
		if err := utils.SendInterviewResultEmail(user.Email, user.Name, passed, rec.RetryAfter); err != nil {
			log.Printf("Error sending interview result email to user %d: %v", reqData.UserID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Interview result recorded.", rec)
}

// UploadOfferLetter stores the offer letter for a candidate, advances them to
// OFFER_LETTER_UPLOADED and notifies them by email.
func UploadOfferLetter(c *fiber.Ctx) error {
	hrID, _ := c.Locals("userId").(uint)

	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid candidate id!", nil)
	}

	db := database.Database.Db
	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Candidate not found!", nil)
	}

	file, err := c.FormFile("offer_letter")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Offer letter file is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, "./public/uploads/offers")
	if err != nil {
		log.Printf("Error saving offer letter for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save offer letter!", nil)
	}

	doc := models.Document{
		UserID:       uint(userID),
		Kind:         "OFFER_LETTER",
		FilePath:     filePath,
		ReviewStatus: "APPROVED",
		ReviewedBy:   hrID,
	}
	if err := db.Create(&doc).Error; err != nil {
		log.Printf("Error recording offer letter for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save offer letter!", nil)
	}

	rec, err := Service.GetStatus(c.UserContext(), uint(userID), progress.PipelineCandidate)
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}
	pipeline := pipelineOf(rec)

	rec, err = Service.RequestTransition(c.UserContext(), uint(userID), pipeline, progress.StepOfferLetterUploaded, time.Now())
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	rec, err = Service.MarkMilestone(c.UserContext(), uint(userID), pipeline, progress.MilestoneOfferLetterUploaded)
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	if err := utils.SendOfferLetterEmail(user.Email, user.Name, user.AppliedPosition); err != nil {
		log.Printf("Error sending offer letter email to user %d: %v", userID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Offer letter uploaded.", fiber.Map{
		"progress": rec,
		"document": doc,
	})
}

// ReviewDocument approves or rejects an uploaded document.
func ReviewDocument(c *fiber.Ctx) error {
	hrID, _ := c.Locals("userId").(uint)

	reqData := new(struct {
		DocumentID uint   `json:"document_id"`
		Status     string `json:"status"` // APPROVED or REJECTED
		Note       string `json:"note"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	var doc models.Document
	if err := db.Where("id = ? AND is_deleted = false", reqData.DocumentID).First(&doc).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	doc.ReviewStatus = reqData.Status
	doc.ReviewNote = reqData.Note
	doc.ReviewedBy = hrID
	if err := db.Save(&doc).Error; err != nil {
		log.Printf("Error reviewing document %d: %v", reqData.DocumentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review document!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document reviewed.", doc)
}

// Dashboard returns pipeline totals per step plus today's and this week's
// activity for the HR landing page.
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var stepCounts []struct {
		CurrentStep string `json:"current_step"`
		Count       int64  `json:"count"`
	}
	if err := db.Model(&models.OnboardingProgress{}).
		Select("current_step, count(*) as count").
		Group("current_step").
		Scan(&stepCounts).Error; err != nil {
		log.Printf("Error loading step counts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load dashboard!", nil)
	}

	dayStart := now.BeginningOfDay()
	weekStart := now.BeginningOfWeek()

	var signupsToday int64
	db.Model(&models.User{}).Where("created_at >= ? AND is_deleted = false", dayStart).Count(&signupsToday)

	var interviewsThisWeek int64
	db.Model(&models.Interview{}).Where("scheduled_at >= ? AND is_deleted = false", weekStart).Count(&interviewsThisWeek)

	var pendingDocuments int64
	db.Model(&models.Document{}).Where("review_status = ? AND is_deleted = false", "PENDING").Count(&pendingDocuments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully.", fiber.Map{
		"step_counts":          stepCounts,
		"signups_today":        signupsToday,
		"interviews_this_week": interviewsThisWeek,
		"pending_documents":    pendingDocuments,
	})
}

// Candidates lists all subjects with their progress for the HR roster view.
func Candidates(c *fiber.Ctx) error {
	db := database.Database.Db

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var records []models.OnboardingProgress
	if err := db.Order("updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error; err != nil {
		log.Printf("Error listing progress records: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list candidates!", nil)
	}

	var total int64
	db.Model(&models.OnboardingProgress{}).Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Candidates fetched successfully.", fiber.Map{
		"records": records,
		"page":    page,
		"limit":   limit,
		"total":   total,
	})
}
