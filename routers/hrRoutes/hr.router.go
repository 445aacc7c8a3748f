package hrRoutes

import (
	"github.com/gofiber/fiber/v2"

	hrControllers "hrms/controllers/hr"
	"hrms/middleware"
	hrValidators "hrms/validators/hr"
)

func SetupHRRoutes(app *fiber.App) {
	group := app.Group("/hr", middleware.JWTMiddleware)

	group.Get("/dashboard", middleware.CheckPermissionMiddleware("hr-dashboard"), hrControllers.Dashboard)
	group.Get("/candidates", middleware.CheckPermissionMiddleware("hr-dashboard"), hrControllers.Candidates)
	group.Post("/interview/result", hrValidators.RecordInterviewRound(),
		middleware.CheckPermissionMiddleware("record-interview"), hrControllers.RecordInterviewRound)
	group.Post("/offer-letter/:userId", middleware.CheckPermissionMiddleware("upload-offer-letter"), hrControllers.UploadOfferLetter)
	group.Patch("/document/review", hrValidators.ReviewDocument(),
		middleware.CheckPermissionMiddleware("review-document"), hrControllers.ReviewDocument)
}
