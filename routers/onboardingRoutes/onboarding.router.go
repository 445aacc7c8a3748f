package onboardingRoutes

import (
	"github.com/gofiber/fiber/v2"

	onboardingControllers "hrms/controllers/onboarding"
	"hrms/middleware"
	"hrms/progress"
	onboardingValidators "hrms/validators/onboarding"
)

func SetupOnboardingRoutes(app *fiber.App, svc *progress.Service) {
	group := app.Group("/onboarding", middleware.JWTMiddleware, middleware.CheckProgress(svc))

	group.Get("/status", onboardingControllers.Status)

	// Pipeline actions are blocked while the retry cooldown is running.
	group.Post("/profile", onboardingValidators.SubmitProfile(), middleware.ProtectRoute(svc),
		middleware.CheckPermissionMiddleware("submit-profile"), onboardingControllers.SubmitProfile)
	group.Post("/interview/schedule", onboardingValidators.ScheduleInterview(), middleware.ProtectRoute(svc),
		middleware.CheckPermissionMiddleware("schedule-interview"), onboardingControllers.ScheduleInterview)
	group.Post("/documents", middleware.ProtectRoute(svc),
		middleware.CheckPermissionMiddleware("upload-documents"), onboardingControllers.UploadDocuments)
	group.Post("/offer/accept", middleware.ProtectRoute(svc),
		middleware.CheckPermissionMiddleware("sign-offer"), onboardingControllers.AcceptOffer)
	group.Post("/id-card", middleware.ProtectRoute(svc),
		middleware.CheckPermissionMiddleware("generate-id-card"), onboardingControllers.GenerateIDCard)
	group.Post("/finish", middleware.ProtectRoute(svc), onboardingControllers.Finish)

	// The post-onboarding dashboard sits behind the access gate.
	app.Get("/dashboard", middleware.JWTMiddleware, middleware.DashboardGate(svc), onboardingControllers.Dashboard)
}
