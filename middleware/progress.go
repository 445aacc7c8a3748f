package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms/progress"
)

// CheckProgress loads (lazily creating) the caller's onboarding record and
// attaches it to the request context for downstream handlers.
func CheckProgress(svc *progress.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		pipeline := pipelineFromLocals(c)
		rec, err := svc.GetStatus(c.UserContext(), userID, pipeline)
		if err != nil {
			return storeErrorResponse(c, err)
		}

		c.Locals("progress", rec)
		return c.Next()
	}
}

// ProtectRoute blocks pipeline actions while the caller is inside the
// interview-failure cooldown and tells them where to go instead.
func ProtectRoute(svc *progress.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		now := time.Now()
		allowed, err := svc.CanProceed(c.UserContext(), userID, now)
		if err != nil {
			return storeErrorResponse(c, err)
		}
		if allowed {
			return c.Next()
		}

		msg, _, err := svc.RetryMessage(c.UserContext(), userID, now)
		if err != nil {
			return storeErrorResponse(c, err)
		}

		redirect, err := svc.ResolveRedirect(c.UserContext(), userID, pipelineFromLocals(c))
		if err != nil {
			return storeErrorResponse(c, err)
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":      false,
			"message":     msg,
			"redirect_to": redirect,
		})
	}
}

// DashboardGate guards the post-onboarding dashboard. Denials carry the
// redirect target and a milestone snapshot for the UI.
func DashboardGate(svc *progress.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		decision, err := svc.Evaluate(c.UserContext(), userID, pipelineFromLocals(c))
		if err != nil {
			return storeErrorResponse(c, err)
		}

		if !decision.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":      false,
				"message":     "Onboarding is not complete yet!",
				"redirect_to": decision.RedirectTo,
				"reason":      decision.Reason,
				"snapshot":    decision.Snapshot,
			})
		}

		c.Locals("accessDecision", decision)
		return c.Next()
	}
}

func pipelineFromLocals(c *fiber.Ctx) progress.Pipeline {
	if role, ok := c.Locals("role").(string); ok && role == "EMPLOYEE" {
		return progress.PipelineEmployee
	}
	return progress.PipelineCandidate
}

func storeErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, progress.ErrStoreUnavailable) {
		return JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable. Please try again.", nil)
	}
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

// ProgressErrorResponse maps a progress error to the HTTP reply the caller
// should see. Retry cooldowns are shown verbatim; everything else collapses
// into a generic message per kind.
func ProgressErrorResponse(c *fiber.Ctx, err error) error {
	var retryErr *progress.RetryNotYetAllowedError
	switch {
	case errors.As(err, &retryErr):
		days := progress.RemainingDays(retryErr.Remaining)
		msg := fmt.Sprintf("You can re-apply for the interview in %d day(s).", days)
		return JsonResponse(c, fiber.StatusForbidden, false, msg, nil)
	case errors.Is(err, progress.ErrRetryNotYetAllowed):
		return JsonResponse(c, fiber.StatusForbidden, false, "Interview retry is not yet available.", nil)
	case errors.Is(err, progress.ErrTerminalState):
		return JsonResponse(c, fiber.StatusConflict, false, "Onboarding is already completed!", nil)
	case errors.Is(err, progress.ErrInvalidTransition):
		return JsonResponse(c, fiber.StatusConflict, false, "This step is not allowed from your current stage!", nil)
	case errors.Is(err, progress.ErrUnknownState):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Unknown onboarding step!", nil)
	case errors.Is(err, progress.ErrConcurrentModification):
		return JsonResponse(c, fiber.StatusConflict, false, "Your record was updated by another request. Please retry.", nil)
	case errors.Is(err, progress.ErrStoreUnavailable):
		return JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service temporarily unavailable. Please try again.", nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
