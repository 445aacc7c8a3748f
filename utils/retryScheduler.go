package utils

import (
	"context"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"hrms/database"
	"hrms/models"
	"hrms/progress"
)

// InitializeRetryScheduler sets up the daily retry-eligibility reminder job.
func InitializeRetryScheduler(svc *progress.Service) {
	log.Println("[RETRY-SCHEDULER] Initializing retry reminder scheduler...")

	c := cron.New()

	// Run daily at 9 AM to notify candidates whose cooldown lapsed today
	c.AddFunc("0 9 * * *", func() {
		log.Println("[RETRY-SCHEDULER] Running daily retry eligibility check...")
		ProcessRetryReminders(svc)
	})

	c.Start()
	log.Println("[RETRY-SCHEDULER] Retry reminder scheduler started - runs daily at 9 AM")
}

// ProcessRetryReminders mails every candidate whose interview-failure
// cooldown ended today. Restricting to today's window keeps the daily job
// from re-mailing the same candidate.
func ProcessRetryReminders(svc *progress.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	eligible, err := svc.FindRetryEligible(ctx, time.Now())
	if err != nil {
		log.Printf("[RETRY-SCHEDULER] Error fetching eligible records: %v", err)
		return
	}

	dayStart := now.BeginningOfDay()
	reminded := 0
	for _, rec := range eligible {
		if rec.RetryAfter == nil || rec.RetryAfter.Before(dayStart) {
			continue // lapsed on an earlier day, already reminded
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = false", rec.SubjectID).First(&user).Error; err != nil {
			log.Printf("[RETRY-SCHEDULER] Error fetching user %d: %v", rec.SubjectID, err)
			continue
		}

		if err := SendRetryReminderEmail(user.Email, user.Name); err != nil {
			log.Printf("[RETRY-SCHEDULER] Error mailing user %d: %v", rec.SubjectID, err)
			continue
		}
		reminded++
	}

	log.Printf("[RETRY-SCHEDULER] Sent %d retry reminder(s)", reminded)
}
