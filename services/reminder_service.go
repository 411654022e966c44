// services/reminder_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"careloom-backend/models"
	"careloom-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	mailer Mailer
	ideas  IdeaSource
}

func NewReminderService(db *gorm.DB, mailer Mailer) *ReminderService {
	return &ReminderService{
		db:     db,
		mailer: mailer,
		ideas:  NewStaticIdeaSource(),
	}
}

// RunOptions selects the operational mode of a run. ForceSend dispatches for
// every populated date regardless of the trigger predicate and skips log
// writes so manual triggers don't desync future automatic runs. DryRun
// evaluates everything but performs no sends and no writes.
type RunOptions struct {
	ForceSend bool
	DryRun    bool
}

// SentReminder records one successful (or would-be, under dry-run) dispatch.
type SentReminder struct {
	RelationshipID uuid.UUID `json:"relationshipId"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	EventDate      string    `json:"eventDate"`
	Recipient      string    `json:"recipient"`
}

// FailedReminder records one per-item failure; the run keeps going.
type FailedReminder struct {
	RelationshipID uuid.UUID `json:"relationshipId"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Error          string    `json:"error"`
}

// RunSummary aggregates one invocation of the daily run.
type RunSummary struct {
	Sent        []SentReminder   `json:"sent"`
	Failed      []FailedReminder `json:"failed"`
	LogFailures []FailedReminder `json:"logFailures"`
	Skipped     int              `json:"skipped"`
	DryRun      bool             `json:"dryRun"`
}

// reminderCandidate pairs a relationship with its owning profile; reminders
// always go to the owner's address, never the relationship's own email.
type reminderCandidate struct {
	relationship models.Relationship
	ownerName    string
	ownerEmail   string
}

// StartScheduler registers the daily reminder run and the weekly date-ideas
// digest. The cron callbacks are the only places the wall clock is read; the
// core below always takes today as a parameter.
func (s *ReminderService) StartScheduler() *cron.Cron {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		if _, err := s.RunDaily(time.Now(), RunOptions{}); err != nil {
			log.Printf("[REMINDERS] daily run failed: %v", err)
		}
	})

	// Date-ideas digest every Monday at 8 AM
	c.AddFunc("0 8 * * 1", func() {
		s.SendWeeklyDateIdeas(time.Now())
	})

	c.Start()
	log.Println("Reminder scheduler started")
	return c
}

// RunDaily evaluates every relationship whose owner has an email address, for
// both the birthday and anniversary fields independently, and dispatches
// reminders due today. Per-item failures are collected and never abort the
// run; only a failure to load the candidate list at all is fatal.
func (s *ReminderService) RunDaily(today time.Time, opts RunOptions) (RunSummary, error) {
	summary := RunSummary{
		Sent:        []SentReminder{},
		Failed:      []FailedReminder{},
		LogFailures: []FailedReminder{},
		DryRun:      opts.DryRun,
	}

	log.Printf("[REMINDERS] starting daily run for %s (force=%v dry_run=%v)",
		today.UTC().Format(utils.CalendarDateLayout), opts.ForceSend, opts.DryRun)

	candidates, err := s.loadCandidates()
	if err != nil {
		return summary, fmt.Errorf("load relationships: %w", err)
	}

	for _, cand := range candidates {
		s.processEvent(&summary, cand, models.EventTypeBirthday,
			cand.relationship.Birthday, cand.relationship.BirthdayNotificationFrequency, today, opts)
		s.processEvent(&summary, cand, models.EventTypeAnniversary,
			cand.relationship.Anniversary, cand.relationship.AnniversaryNotificationFrequency, today, opts)
	}

	log.Printf("[REMINDERS] daily run completed: %d sent, %d failed, %d skipped",
		len(summary.Sent), len(summary.Failed), summary.Skipped)
	return summary, nil
}

// loadCandidates fetches all relationships joined with their owning profile,
// keeping only owners with a deliverable email address.
func (s *ReminderService) loadCandidates() ([]reminderCandidate, error) {
	type row struct {
		models.Relationship
		OwnerName  string
		OwnerEmail string
	}

	var rows []row
	err := s.db.Model(&models.Relationship{}).
		Select("relationships.*, profiles.name AS owner_name, profiles.email AS owner_email").
		Joins("JOIN profiles ON profiles.id = relationships.profile_id").
		Where("profiles.email IS NOT NULL AND profiles.email <> ''").
		Where("profiles.is_active = ?", true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]reminderCandidate, 0, len(rows))
	for _, r := range rows {
		candidates = append(candidates, reminderCandidate{
			relationship: r.Relationship,
			ownerName:    r.OwnerName,
			ownerEmail:   r.OwnerEmail,
		})
	}
	return candidates, nil
}

func (s *ReminderService) processEvent(summary *RunSummary, cand reminderCandidate, eventType string, raw *string, frequency models.Frequency, today time.Time, opts RunOptions) {
	rel := cand.relationship
	if raw == nil || *raw == "" {
		summary.Skipped++
		return
	}

	due, occurrence, err := EvaluateDateField(raw, frequency, today)
	if err != nil {
		// Bad data must not pass as "no reminder due".
		log.Printf("[REMINDERS] relationship %s: %v", rel.ID, err)
		summary.Failed = append(summary.Failed, FailedReminder{
			RelationshipID: rel.ID,
			Name:           rel.Name,
			Type:           eventType,
			Error:          err.Error(),
		})
		return
	}

	// Forced sends dispatch for every populated date, frequency and trigger
	// day notwithstanding. EvaluateDateField already resolved the occurrence.
	if opts.ForceSend {
		due = true
	}

	if !due {
		summary.Skipped++
		return
	}

	if !opts.ForceSend && s.alreadySent(rel.ID, eventType, occurrence) {
		summary.Skipped++
		return
	}

	daysUntil := utils.DaysBetween(today, occurrence)
	subject, body := RenderReminderEmail(cand.ownerName, rel, eventType,
		occurrence.Format(utils.CalendarDateLayout), daysUntil)

	sent := SentReminder{
		RelationshipID: rel.ID,
		Name:           rel.Name,
		Type:           eventType,
		EventDate:      occurrence.Format(utils.CalendarDateLayout),
		Recipient:      cand.ownerEmail,
	}

	if opts.DryRun {
		summary.Sent = append(summary.Sent, sent)
		return
	}

	if err := s.mailer.Send(cand.ownerEmail, subject, body); err != nil {
		log.Printf("[REMINDERS] failed to send %s reminder for %s: %v", eventType, rel.Name, err)
		summary.Failed = append(summary.Failed, FailedReminder{
			RelationshipID: rel.ID,
			Name:           rel.Name,
			Type:           eventType,
			Error:          err.Error(),
		})
		return
	}

	summary.Sent = append(summary.Sent, sent)

	// Forced sends bypass logging so repeated manual triggers don't desync
	// the automatic schedule.
	if opts.ForceSend {
		return
	}

	entry := models.ReminderLog{
		ProfileID:      rel.ProfileID,
		RelationshipID: rel.ID,
		Type:           eventType,
		ReminderDate:   utils.BeginningOfDay(today),
		EventDate:      occurrence,
		SentAt:         time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		// The email already went out; surface loudly and move on. A missing
		// log row risks a duplicate send on the next run, never a rollback.
		log.Printf("[REMINDERS] LOG WRITE FAILED for relationship %s (%s): %v (duplicate send possible on next run)",
			rel.ID, eventType, err)
		summary.LogFailures = append(summary.LogFailures, FailedReminder{
			RelationshipID: rel.ID,
			Name:           rel.Name,
			Type:           eventType,
			Error:          err.Error(),
		})
	}
}

// alreadySent checks the idempotency log before dispatching. The unique index
// on (relationship, type, event date) is the hard guard; this check keeps a
// same-day re-run from even attempting the send.
func (s *ReminderService) alreadySent(relationshipID uuid.UUID, eventType string, eventDate time.Time) bool {
	var entry models.ReminderLog
	err := s.db.Where("relationship_id = ? AND type = ? AND event_date = ?",
		relationshipID, eventType, eventDate).First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[REMINDERS] idempotency check failed for %s (%s): %v", relationshipID, eventType, err)
		}
		return false
	}
	return true
}
