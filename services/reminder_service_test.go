package services

import (
	"errors"
	"testing"
	"time"

	"careloom-backend/internal/testutil"
	"careloom-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentEmail struct {
	to      string
	subject string
	body    string
}

// fakeMailer records sends and can be told to fail for specific recipients.
type fakeMailer struct {
	sent    []sentEmail
	failFor map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: map[string]bool{}}
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.failFor[to] {
		return errors.New("transport rejected message")
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: htmlBody})
	return nil
}

func createProfile(t *testing.T, gdb *gorm.DB, email string) models.Profile {
	t.Helper()
	profile := models.Profile{
		ID:             uuid.New(),
		Email:          email,
		Password:       "not-a-real-hash",
		Name:           "Owner",
		NudgeFrequency: models.FrequencyOneWeek,
		IsActive:       true,
	}
	// Skip hooks so fixtures don't pay for bcrypt on every test
	if err := gdb.Session(&gorm.Session{SkipHooks: true}).Create(&profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return profile
}

func createRelationship(t *testing.T, gdb *gorm.DB, profileID uuid.UUID, name string, birthday *string, frequency models.Frequency) models.Relationship {
	t.Helper()
	rel := models.Relationship{
		ID:                               uuid.New(),
		ProfileID:                        profileID,
		Name:                             name,
		RelationshipType:                 "friend",
		Email:                            "contact@example.com", // must never receive reminders
		Birthday:                         birthday,
		BirthdayNotificationFrequency:    frequency,
		AnniversaryNotificationFrequency: models.FrequencyNone,
		DateIdeasFrequency:               models.DateIdeasNone,
	}
	if err := gdb.Session(&gorm.Session{SkipHooks: true}).Create(&rel).Error; err != nil {
		t.Fatalf("failed to create relationship: %v", err)
	}
	return rel
}

func TestRunDailySendsDueReminderToOwner(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	rel := createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)

	today := date(2025, time.March, 3)
	summary, err := service.RunDaily(today, RunOptions{})
	require.NoError(t, err)

	require.Len(t, summary.Sent, 1)
	assert.Equal(t, rel.ID, summary.Sent[0].RelationshipID)
	assert.Equal(t, models.EventTypeBirthday, summary.Sent[0].Type)
	assert.Equal(t, "2025-03-10", summary.Sent[0].EventDate)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "owner@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Alice")

	var logs []models.ReminderLog
	require.NoError(t, gdb.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, rel.ID, logs[0].RelationshipID)
	assert.Equal(t, models.EventTypeBirthday, logs[0].Type)
	assert.True(t, logs[0].EventDate.Equal(date(2025, time.March, 10)), "event date %v", logs[0].EventDate)
	assert.True(t, logs[0].ReminderDate.Equal(date(2025, time.March, 3)), "reminder date %v", logs[0].ReminderDate)
}

func TestRunDailyNothingDue(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)

	summary, err := service.RunDaily(date(2025, time.March, 2), RunOptions{})
	require.NoError(t, err)

	assert.Empty(t, summary.Sent)
	assert.Empty(t, summary.Failed)
	assert.Empty(t, mailer.sent)
}

func TestRunDailyPartialFailureIsolation(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, profile.ID, "Broken", strptr("not-a-date"), models.FrequencyOneWeek)
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)
	createRelationship(t, gdb, profile.ID, "Bob", strptr("1991-03-10"), models.FrequencyOneWeek)

	summary, err := service.RunDaily(date(2025, time.March, 3), RunOptions{})
	require.NoError(t, err)

	assert.Len(t, summary.Sent, 2)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "Broken", summary.Failed[0].Name)
	assert.Contains(t, summary.Failed[0].Error, "invalid date format")
	assert.Len(t, mailer.sent, 2)
}

func TestRunDailyDispatchFailureDoesNotAbortRun(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	failing := createProfile(t, gdb, "bounce@example.com")
	mailer.failFor["bounce@example.com"] = true
	createRelationship(t, gdb, failing.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)

	healthy := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, healthy.ID, "Bob", strptr("1991-03-10"), models.FrequencyOneWeek)

	summary, err := service.RunDaily(date(2025, time.March, 3), RunOptions{})
	require.NoError(t, err)

	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "Alice", summary.Failed[0].Name)
	require.Len(t, summary.Sent, 1)
	assert.Equal(t, "Bob", summary.Sent[0].Name)

	// No log row for the failed dispatch
	var logs []models.ReminderLog
	require.NoError(t, gdb.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, summary.Sent[0].RelationshipID, logs[0].RelationshipID)
}

func TestRunDailySecondRunSameDaySkips(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)

	today := date(2025, time.March, 3)
	_, err := service.RunDaily(today, RunOptions{})
	require.NoError(t, err)

	summary, err := service.RunDaily(today, RunOptions{})
	require.NoError(t, err)

	assert.Empty(t, summary.Sent)
	assert.Len(t, mailer.sent, 1)

	var count int64
	gdb.Model(&models.ReminderLog{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRunDailyForceSendBypassesPredicateAndLogging(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	// Not due today under the predicate
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)

	summary, err := service.RunDaily(date(2025, time.January, 15), RunOptions{ForceSend: true})
	require.NoError(t, err)

	require.Len(t, summary.Sent, 1)
	assert.Len(t, mailer.sent, 1)

	var count int64
	gdb.Model(&models.ReminderLog{}).Count(&count)
	assert.Equal(t, int64(0), count, "forced sends must not write reminder logs")
}

func TestRunDailyDryRunPerformsNoSideEffects(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)

	summary, err := service.RunDaily(date(2025, time.March, 3), RunOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	require.Len(t, summary.Sent, 1, "dry run reports what would fire")
	assert.Empty(t, mailer.sent)

	var count int64
	gdb.Model(&models.ReminderLog{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRunDailyFrequencyNoneNeverSends(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyNone)

	// Including the event date itself
	for _, today := range []time.Time{
		date(2025, time.March, 3), date(2025, time.March, 9), date(2025, time.March, 10),
	} {
		summary, err := service.RunDaily(today, RunOptions{})
		require.NoError(t, err)
		assert.Empty(t, summary.Sent, "today %v", today)
	}
	assert.Empty(t, mailer.sent)
}

func TestRunDailySkipsInactiveProfiles(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)
	require.NoError(t, gdb.Model(&models.Profile{}).Where("id = ?", profile.ID).Update("is_active", false).Error)

	summary, err := service.RunDaily(date(2025, time.March, 3), RunOptions{})
	require.NoError(t, err)
	assert.Empty(t, summary.Sent)
}

func TestRunDailyLogWriteFailureSurfacedAfterSend(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)

	// Break the log table so the insert after dispatch fails
	require.NoError(t, gdb.Migrator().DropTable(&models.ReminderLog{}))

	summary, err := service.RunDaily(date(2025, time.March, 3), RunOptions{})
	require.NoError(t, err, "a log-write failure must not fail the run")

	// The email already went out and stays counted as sent
	require.Len(t, summary.Sent, 1)
	assert.Equal(t, "Alice", summary.Sent[0].Name)
	require.Len(t, mailer.sent, 1)

	// The failure is surfaced, not retried and not turned into a dispatch failure
	require.Len(t, summary.LogFailures, 1)
	assert.Equal(t, "Alice", summary.LogFailures[0].Name)
	assert.Equal(t, models.EventTypeBirthday, summary.LogFailures[0].Type)
	assert.NotEmpty(t, summary.LogFailures[0].Error)
	assert.Empty(t, summary.Failed)
}

func TestRunDailyFailsWhenRelationshipsUnavailable(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	createRelationship(t, gdb, profile.ID, "Alice", strptr("1990-03-10"), models.FrequencyOneWeek)

	// Break the candidate query entirely: the whole run must fail with no
	// partial processing
	require.NoError(t, gdb.Migrator().DropTable(&models.Relationship{}))

	summary, err := service.RunDaily(date(2025, time.March, 3), RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load relationships")
	assert.Empty(t, summary.Sent)
	assert.Empty(t, summary.Failed)
	assert.Empty(t, mailer.sent)
}

func TestRunDailyEvaluatesBothEventsIndependently(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	mailer := newFakeMailer()
	service := NewReminderService(gdb, mailer)

	profile := createProfile(t, gdb, "owner@example.com")
	rel := models.Relationship{
		ID:                               uuid.New(),
		ProfileID:                        profile.ID,
		Name:                             "Pat",
		RelationshipType:                 "partner",
		Birthday:                         strptr("1990-03-10"),
		Anniversary:                      strptr("2015-03-04"),
		BirthdayNotificationFrequency:    models.FrequencyOneWeek, // due Mar 3
		AnniversaryNotificationFrequency: models.FrequencyOneDay,  // due Mar 3
		DateIdeasFrequency:               models.DateIdeasNone,
	}
	require.NoError(t, gdb.Session(&gorm.Session{SkipHooks: true}).Create(&rel).Error)

	summary, err := service.RunDaily(date(2025, time.March, 3), RunOptions{})
	require.NoError(t, err)

	require.Len(t, summary.Sent, 2)
	types := []string{summary.Sent[0].Type, summary.Sent[1].Type}
	assert.ElementsMatch(t, []string{models.EventTypeBirthday, models.EventTypeAnniversary}, types)
}
