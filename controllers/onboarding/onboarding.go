package onboardingController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms/middleware"
	"hrms/progress"
)

// Service is the shared progress orchestrator, set once from main.
var Service *progress.Service

func Init(svc *progress.Service) {
	Service = svc
}

func pipelineFor(c *fiber.Ctx) progress.Pipeline {
	if role, ok := c.Locals("role").(string); ok && role == "EMPLOYEE" {
		return progress.PipelineEmployee
	}
	return progress.PipelineCandidate
}

// Status returns the caller's progress record, the next-action redirect and,
// when the retry cooldown blocks them, a wait message.
func Status(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	pipeline := pipelineFor(c)
	rec, err := Service.GetStatus(c.UserContext(), userID, pipeline)
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	redirect, err := Service.ResolveRedirect(c.UserContext(), userID, pipeline)
	if err != nil {
		return middleware.ProgressErrorResponse(c, err)
	}

	data := fiber.Map{
		"progress":    rec,
		"redirect_to": redirect,
	}
	if msg, blocked, err := Service.RetryMessage(c.UserContext(), userID, time.Now()); err == nil && blocked {
		data["retry_message"] = msg
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", data)
}

// Dashboard is the post-onboarding landing page. It is only reachable through
// the access gate, which leaves its decision in the request context.
func Dashboard(c *fiber.Ctx) error {
	decision, _ := c.Locals("accessDecision").(progress.Decision)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Welcome to your dashboard.", fiber.Map{
		"snapshot": decision.Snapshot,
	})
}
